package aolab

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// UseSystem schedules a system in the default Update stage.
func (cmd *Commands) UseSystem(system systemFn) *Commands {
	cmd.app.UseSystem(System(system))
	return cmd
}

// Quit stops the frame loop after the current stage finishes.
func (cmd *Commands) Quit() {
	cmd.app.quit = true
}
