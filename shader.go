package retroscreen

import (
	"fmt"
	"strings"
)

// ShaderError reports a non-empty compile or link log.
type ShaderError struct {
	Stage Stage
	Log   string
}

func (e *ShaderError) Error() string {
	if e.Stage == StageProgram {
		return "shader program linking failed: " + e.Log
	}
	return fmt.Sprintf("error compiling %s shader: %s", e.Stage, e.Log)
}

// Uniform is a resolved uniform location. Active is false when the linked
// program has no such uniform, in which case Location is -1.
type Uniform struct {
	Location int32
	Active   bool
}

// Program pairs a linked program handle with the uniforms resolved when it
// was created. Uniforms holds exactly the names passed to CreateProgram.
type Program struct {
	Handle   uint32
	Uniforms map[string]Uniform
}

// Location returns the location of a resolved, active uniform.
func (p *Program) Location(name string) (int32, bool) {
	u, ok := p.Uniforms[name]
	if !ok || !u.Active {
		return -1, false
	}
	return u.Location, true
}

// CompileShader compiles a single stage. Any diagnostic output from the
// driver, warnings included, is treated as a failure.
func CompileShader(dev Device, stage Stage, source string) (uint32, error) {
	shader, infoLog := dev.CompileShader(stage, source)
	if infoLog = strings.TrimSpace(infoLog); infoLog != "" {
		Logger.Error("shader compile", "stage", stage, "log", infoLog)
		return 0, &ShaderError{Stage: stage, Log: infoLog}
	}
	return shader, nil
}

// CreateProgram compiles and links a vertex/fragment pair and resolves each
// named uniform once.
func CreateProgram(dev Device, vertexSource, fragmentSource string, uniforms ...string) (*Program, error) {
	vs, err := CompileShader(dev, StageVertex, vertexSource)
	if err != nil {
		return nil, err
	}
	fs, err := CompileShader(dev, StageFragment, fragmentSource)
	if err != nil {
		return nil, err
	}

	handle, infoLog := dev.LinkProgram(vs, fs)
	if infoLog = strings.TrimSpace(infoLog); infoLog != "" {
		Logger.Error("shader link", "log", infoLog)
		return nil, &ShaderError{Stage: StageProgram, Log: infoLog}
	}

	p := &Program{
		Handle:   handle,
		Uniforms: make(map[string]Uniform, len(uniforms)),
	}
	for _, name := range uniforms {
		loc, ok := dev.UniformLocation(handle, name)
		if !ok {
			loc = -1
			Logger.Debug("uniform inactive", "name", name, "program", handle)
		}
		p.Uniforms[name] = Uniform{Location: loc, Active: ok}
	}
	return p, nil
}
