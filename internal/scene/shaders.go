package scene

// Shader sources target GL 4.1 core, the context profile the window
// requests.

const skyVertexSrc = `#version 410 core
layout(location = 0) in vec3 position;

uniform mat4 proj;
uniform mat4 view;
uniform mat4 model;

out vec3 texDir;

void main() {
	texDir = position;
	gl_Position = proj * view * model * vec4(position, 1.0);
}
`

const skyFragmentSrc = `#version 410 core
in vec3 texDir;

uniform samplerCube sky;

out vec4 fragColor;

void main() {
	fragColor = texture(sky, texDir);
}
`

const cubeVertexSrc = `#version 410 core
layout(location = 0) in vec3 position;
layout(location = 1) in vec3 normal;

uniform mat4 proj;
uniform mat4 view;
uniform mat4 model;

out vec3 worldNormal;

void main() {
	worldNormal = mat3(model) * normal;
	gl_Position = proj * view * model * vec4(position, 1.0);
}
`

const cubeFragmentSrc = `#version 410 core
in vec3 worldNormal;

uniform vec3 color;

out vec4 fragColor;

void main() {
	vec3 lightDir = normalize(vec3(0.4, 1.0, 0.6));
	float diffuse = max(dot(normalize(worldNormal), lightDir), 0.0);
	fragColor = vec4(color * (0.35 + 0.65 * diffuse), 1.0);
}
`
