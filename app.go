package aolab

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// App is the sandbox shell: shared resources keyed by type, plus systems
// grouped into ordered stages and run once per frame until something calls
// Quit. There is no entity storage; everything lives in resources.
type App struct {
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any
	quit      bool
}

func (app *App) Commands() *Commands {
	return &Commands{app: app}
}

// Run loops over the stages in order, calling every system, until a system
// requests a quit through Commands.
func (app *App) Run() {
	for !app.quit {
		for _, stage := range app.stages {
			for _, system := range app.systems[stage.Name] {
				app.callSystem(system)
			}
			if app.quit {
				break
			}
		}
	}
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// resourceOf fetches an installed resource during module installation,
// before any system runs. Panics if the resource's module was not
// installed earlier in the builder chain.
func resourceOf[T any](app *App) *T {
	var zero T
	if r, ok := app.resources[reflect.TypeOf(zero)]; ok {
		return r.(*T)
	}
	panic(fmt.Sprintf("resource %T is not installed", &zero))
}

var typeOfCommands = reflect.TypeOf(Commands{})

// callSystem resolves each pointer parameter of the system function from
// the resources map and invokes it. An unresolvable parameter is a wiring
// error and panics with the system's name.
func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, ok := app.resources[underlyingType]; ok {
			args[i] = reflect.ValueOf(resource)
		} else {
			panic(fmt.Sprintf("Unable to resolve system dependency.\nSystem: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(argType),
			))
		}
	}
	systemValue.Call(args)
}
