package scene

const modelVertexShader = `#version 410 core

layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aTexCoord;

uniform mat4 uMVP;
uniform mat4 uModel;

out vec3 vNormal;
out vec2 vTexCoord;

void main() {
    vNormal = mat3(transpose(inverse(uModel))) * aNormal;
    vTexCoord = aTexCoord;
    gl_Position = uMVP * vec4(aPosition, 1.0);
}
`

const modelFragmentShader = `#version 410 core

in vec3 vNormal;
in vec2 vTexCoord;

uniform vec3 uLightDir;
uniform vec4 uDiffuse;
uniform vec3 uAmbient;
uniform bool uWireframe;
uniform sampler2D uTexture;
uniform bool uHasTexture;

out vec4 FragColor;

void main() {
    if (uWireframe) {
        FragColor = vec4(0.9, 0.9, 0.9, 1.0);
        return;
    }
    // Lit from both sides.
    vec3 n = normalize(vNormal);
    if (!gl_FrontFacing) {
        n = -n;
    }
    vec4 base = uDiffuse;
    if (uHasTexture) {
        base = texture(uTexture, vTexCoord);
    }
    float lambert = max(dot(n, normalize(uLightDir)), 0.0);
    vec3 color = uAmbient * base.rgb + base.rgb * lambert;
    FragColor = vec4(min(color, vec3(1.0)), base.a);
}
`
