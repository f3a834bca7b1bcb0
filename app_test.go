package aolab

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	calls []string
}

func TestApp_addResources(t *testing.T) {
	app := &App{
		resources: make(map[reflect.Type]any),
	}

	resource1 := &MockResource1{name: "Resource1"}
	app.addResources(resource1)

	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := &MockResource2{}
	app.addResources(resource2)

	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")
}

func TestApp_callSystemInjectsResources(t *testing.T) {
	app := NewAppBuilder().Build()
	app.addResources(&MockResource1{name: "injected"})

	called := false
	app.callSystem(func(r *MockResource1) {
		called = true
		assert.Equal(t, "injected", r.name)
	})
	assert.True(t, called)
}

func TestApp_callSystemInjectsCommands(t *testing.T) {
	app := NewAppBuilder().Build()

	app.callSystem(func(cmd *Commands) {
		cmd.Quit()
	})
	assert.True(t, app.quit)
}

func TestApp_callSystemPanicsOnUnknownDependency(t *testing.T) {
	app := NewAppBuilder().Build()
	assert.Panics(t, func() {
		app.callSystem(func(r *MockResource1) {})
	})
}

func TestApp_RunExecutesStagesInOrder(t *testing.T) {
	app := NewAppBuilder().Build()
	log := &MockResource2{}
	app.addResources(log)

	app.UseSystem(System(func(r *MockResource2) {
		r.calls = append(r.calls, "render")
	}).InStage(Render))
	app.UseSystem(System(func(r *MockResource2) {
		r.calls = append(r.calls, "pre-update")
	}).InStage(PreUpdate))
	app.UseSystem(System(func(r *MockResource2, cmd *Commands) {
		r.calls = append(r.calls, "post-render")
		cmd.Quit()
	}).InStage(PostRender))

	app.Run()

	assert.Equal(t, []string{"pre-update", "render", "post-render"}, log.calls)
}

func TestApp_RunStopsOnQuit(t *testing.T) {
	app := NewAppBuilder().Build()
	frames := 0
	app.UseSystem(System(func(cmd *Commands) {
		frames++
		if frames == 3 {
			cmd.Quit()
		}
	}).InStage(Update))

	app.Run()
	assert.Equal(t, 3, frames)
}

func TestApp_UseSystemPanicsOnUnknownStage(t *testing.T) {
	app := NewAppBuilder().Build()
	assert.Panics(t, func() {
		app.UseSystem(System(func() {}).InStage(Stage{Name: "NoSuchStage"}))
	})
}

func TestResourceOf(t *testing.T) {
	app := NewAppBuilder().Build()
	res := &MockResource1{name: "held"}
	app.addResources(res)

	assert.Same(t, res, resourceOf[MockResource1](app))
	assert.Panics(t, func() { resourceOf[MockResource2](app) })
}

type quitModule struct{}

func (quitModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&MockResource1{name: "from module"})
	app.UseSystem(System(func(cmd *Commands) { cmd.Quit() }).InStage(Update))
}

func TestAppBuilder_InstallsModules(t *testing.T) {
	app := NewAppBuilder().UseModule(quitModule{}).Build()
	assert.Equal(t, "from module", resourceOf[MockResource1](app).name)

	app.Run()
	assert.True(t, app.quit)
}

func TestApp_LoggerFallsBackToNop(t *testing.T) {
	app := NewAppBuilder().Build()
	require.NotNil(t, app.Logger())

	logger := NewDefaultLogger("test", false)
	app.addResources(logger)
	assert.Same(t, Logger(logger), app.Logger())
}
