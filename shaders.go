package retroscreen

// SimpleVertexSource passes positions straight through in NDC and forwards
// the texture coordinate.
const SimpleVertexSource = `
#version 410 core
layout (location = 0) in vec2 vPosition;
layout (location = 1) in vec2 vUv;

out vec2 uv;

void main() {
    uv = vUv;
    gl_Position = vec4(vPosition, 0.0, 1.0);
}
`

// SimpleFragmentSource samples the bound texture unmodified.
const SimpleFragmentSource = `
#version 410 core
in vec2 uv;

uniform sampler2D sampler;

out vec4 fragColor;

void main() {
    fragColor = texture(sampler, uv);
}
`

// RetroFragmentSource maps every texel to one of two phosphor greens by
// thresholding its mean intensity.
//
// aspect is declared for hosts that want to correct for the screen quad's
// shape. Nothing reads it yet, so drivers usually report it inactive.
const RetroFragmentSource = `
#version 410 core
in vec2 uv;

uniform sampler2D sampler;
uniform float aspect;

out vec4 fragColor;

void main() {
    vec4 texColor = texture(sampler, uv);
    vec3 rgb = texColor.rgb;
    if ((rgb.r + rgb.g + rgb.b) / 3.0 > 0.59) {
        rgb = vec3(0.164, 0.612, 0.502);
    } else {
        rgb = vec3(0.047, 0.165, 0.098);
    }
    fragColor = vec4(rgb, 1.0);
}
`

// AspectUniform is the name of the optional aspect uniform in
// RetroFragmentSource.
const AspectUniform = "aspect"
