// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// FlatVertexShader is the vertex shader for flat page and polygon passes.
//
//go:embed flat.vert
var FlatVertexShader string

// FlatFragmentShader is the fragment shader for flat page and polygon passes.
//
//go:embed flat.frag
var FlatFragmentShader string

// CurlVertexShader is the vertex shader for the cylindrical mesh wrap.
//
//go:embed curl.vert
var CurlVertexShader string

// CurlFragmentShader is the fragment shader for the cylindrical mesh wrap.
//
//go:embed curl.frag
var CurlFragmentShader string

// GradientVertexShader is the vertex shader for gradient shadow strips.
//
//go:embed gradient.vert
var GradientVertexShader string

// GradientFragmentShader is the fragment shader for gradient shadow strips.
//
//go:embed gradient.frag
var GradientFragmentShader string
