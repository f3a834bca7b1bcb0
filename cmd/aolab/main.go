package main

import (
	"flag"

	"github.com/aolab3d/aolab"
)

func main() {
	width := flag.Int("width", 1600, "window width")
	height := flag.Int("height", 900, "window height")
	shaderDir := flag.String("shaders", "shaders", "directory the editable WGSL sources live in")
	patternSize := flag.Int("pattern", 64, "side length of the SSAO rotation pattern texture")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	aolab.NewAppBuilder().
		UseModule(
			aolab.LoggingModule{Prefix: "aolab", Debug: *debug},
			aolab.WindowModule{Width: *width, Height: *height, Title: "aolab"},
			aolab.InputModule{},
			aolab.TimeModule{},
			aolab.CameraModule{},
			aolab.RendererModule{ShaderDir: *shaderDir, PatternSize: *patternSize},
		).
		Build().
		Run()
}
