// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Stage names a shader stage in diagnostics.
type Stage string

// Shader stages.
const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
	StageProgram  Stage = "program"
)

// Error carries the driver's info log for a failed compile or link.
type Error struct {
	Stage Stage
	Log   string
}

func (e *Error) Error() string {
	if e.Stage == StageProgram {
		return fmt.Sprintf("link: %s", e.Log)
	}
	return fmt.Sprintf("%s shader: %s", e.Stage, e.Log)
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an *Error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	// Compile vertex shader
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, StageVertex)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	// Compile fragment shader
	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, StageFragment)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	// Link program
	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) {
			gl.GetProgramInfoLog(program, logLen, nil, buf)
		})
		gl.DeleteProgram(program)
		return 0, &Error{Stage: StageProgram, Log: log}
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, stage Stage) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) {
			gl.GetShaderInfoLog(shader, logLen, nil, buf)
		})
		gl.DeleteShader(shader)
		return 0, &Error{Stage: stage, Log: log}
	}

	return shader, nil
}

// infoLog reads a driver log of logLen bytes, which may be zero.
func infoLog(logLen int32, read func(buf *uint8)) string {
	if logLen <= 0 {
		return "(no info log)"
	}
	log := make([]byte, logLen)
	read(&log[0])
	return strings.TrimRight(string(log), "\x00\n")
}

// GetUniform returns the uniform location for the given name.
// Returns -1 if the uniform is not found or inactive.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
