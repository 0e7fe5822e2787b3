package intent

// builtins is the catalogue installed by [Default], in lookup priority order.
//
//nolint:gochecknoglobals
var builtins = []Intent{
	{
		Name:        "device.sniff",
		Command:     "Sniff~",
		Category:    CategoryDevice,
		Optional:    []string{"scope", "target"},
		Description: "Detect and enumerate nearby devices or sensors",
		Examples:    []string{"Sniff~ [ALL]", "Sniff~ device | ID~!!"},
	},
	{
		Name:        "device.detect",
		Command:     "detect~!!",
		Category:    CategoryDevice,
		Required:    []string{"target"},
		Description: "Detect specific device or sensor type",
		Examples:    []string{"detect~!! | sensors", "detect~!! | UWB"},
	},
	{
		Name:        "device.fetch",
		Command:     "Fetch~!!",
		Category:    CategoryDevice,
		Required:    []string{"target"},
		Optional:    []string{"scope"},
		Description: "Fetch device firmware or data",
		Examples:    []string{"Fetch~!! needed firmware [sensors]", "Fetch~!! device data"},
	},
	{
		Name:        "device.pair",
		Command:     "Pair~",
		Category:    CategoryDevice,
		Optional:    []string{"device"},
		Description: "Pair with a device",
		Examples:    []string{"Pair~ | Device~!!"},
	},
	{
		Name:        "device.sense",
		Command:     "Sense~!!",
		Category:    CategoryDevice,
		Required:    []string{"target"},
		Description: "Read sensor data from device",
		Examples:    []string{"Sense~!! | device [UWB| actions~!!]"},
	},
	{
		Name:        "state.store",
		Command:     "Store~",
		Category:    CategoryState,
		Required:    []string{"ref"},
		Description: "Store data or state reference",
		Examples:    []string{"Store~ @.attributes", "Store~ @pair"},
	},
	{
		Name:        "ui.build",
		Command:     "Build~",
		Category:    CategoryUI,
		Optional:    []string{"target", "params"},
		Description: "Build UI component",
		Examples:    []string{"Build~!! UI", "Build~ panel"},
	},
	{
		Name:        "ui.panel",
		Command:     "Panel~!!",
		Category:    CategoryUI,
		Optional:    []string{"id", "feed", "source", "controls", "permissions"},
		Description: "Create UI panel with configuration",
		Examples:    []string{`Panel~!! | ID~ "MyPanel"`, "Panel~!! | Feed~ LIVE"},
	},
	{
		Name:        "ui.panels",
		Command:     "Panels~",
		Category:    CategoryUI,
		Optional:    []string{"layout"},
		Description: "Define panels container",
		Examples:    []string{"Panels~", "Panels~ | Grid~"},
	},
	{
		Name:        "ui.grid",
		Command:     "Grid~",
		Category:    CategoryUI,
		Optional:    []string{"rows", "columns"},
		Description: "Define grid layout",
		Examples:    []string{"Grid~ | Rows~ 3 | Columns~ 8"},
	},
	{
		Name:        "ui.show",
		Command:     "Show~",
		Category:    CategoryUI,
		Required:    []string{"target"},
		Description: "Display content or data",
		Examples:    []string{"Show~ data", "Show~ hero card"},
	},
	{
		Name:        "auth.ask",
		Command:     "ASK~!!",
		Category:    CategoryAuth,
		Required:    []string{"permission"},
		Description: "Request user permission",
		Examples:    []string{"ASK~!! | ACCESS", "ASK~!! | SENSOR_ACCESS"},
	},
	{
		Name:        "auth.access",
		Command:     "ACCESS~!!",
		Category:    CategoryAuth,
		Required:    []string{"resource"},
		Description: "Grant or check access to resource",
		Examples:    []string{"ACCESS~!! | DEVICE", "ACCESS~ $ | Fetch~!!"},
	},
	{
		Name:        "exec.call",
		Command:     "call~",
		Category:    CategoryExec,
		Required:    []string{"target"},
		Description: "Call function or command",
		Examples:    []string{"call~ [token]", "call~ device.action"},
	},
	{
		Name:        "exec.send",
		Command:     "SEND~!!",
		Category:    CategoryExec,
		Required:    []string{"target", "data"},
		Description: "Send data to target",
		Examples:    []string{"SEND~!! | device | data", "send~ APP [ouija board.kit]"},
	},
	{
		Name:        "exec.get",
		Command:     "get~",
		Category:    CategoryExec,
		Required:    []string{"target"},
		Description: "Get data from source",
		Examples:    []string{"get~ Device~ ID", "Get~ sensor data"},
	},
	{
		Name:        "core.simcore",
		Command:     "SimCore~!!",
		Category:    CategoryControl,
		Optional:    []string{"action", "target"},
		Description: "Simulation core control",
		Examples:    []string{"SimCore~!! | Inject~ sensor", "SimCore~!! | Override~ firmware"},
	},
	{
		Name:        "core.ncom",
		Command:     "NCOM~!!",
		Category:    CategoryControl,
		Required:    []string{"action"},
		Description: "NCOM core command",
		Examples:    []string{"NCOM~!! DEV | device", "NCOM~ system call"},
	},
	{
		Name:        "config.feed",
		Command:     "Feed~",
		Category:    CategoryState,
		Required:    []string{"mode"},
		Description: "Configure data feed",
		Examples:    []string{"Feed~ LIVE", "Feed~ CACHED"},
	},
	{
		Name:        "config.source",
		Command:     "Source~",
		Category:    CategoryState,
		Required:    []string{"target"},
		Description: "Set data source",
		Examples:    []string{"Source~ sensor.eye", "Source~ device.primary"},
	},
	{
		Name:        "config.permissions",
		Command:     "Permissions~",
		Category:    CategoryAuth,
		Required:    []string{"level"},
		Description: "Set permission level",
		Examples:    []string{"Permissions~ DEV~!!", "Permissions~ USER"},
	},
	{
		Name:        "config.log",
		Command:     "Log~",
		Category:    CategoryState,
		Required:    []string{"mode"},
		Description: "Configure logging",
		Examples:    []string{"Log~ ALWAYS", "Log~ DEBUG"},
	},
}

// builtinRenderers collects the renderers of a builtin intent from the
// per-backend tables.
func builtinRenderers(name string) Renderers {
	r := make(Renderers)

	for b, table := range map[Backend]map[string]RenderFunc{
		Shell:  shellRenderers,
		HTML:   htmlRenderers,
		NCOM:   ncomRenderers,
		Python: pythonRenderers,
	} {
		if fn, ok := table[name]; ok {
			r[b] = fn
		}
	}

	return r
}
