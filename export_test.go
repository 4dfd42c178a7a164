package retroscreen

var ChooseSoundtrack = chooseSoundtrack
