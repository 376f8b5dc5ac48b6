package server

import "github.com/mark3labs/mcp-go/mcp"

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("refresh_snapshot",
			mcp.WithDescription("Rebuild the UI snapshot of the frontmost application and return it in compact notation. "+
				"Interactive elements carry [ID=n]; pass n to click_element or type_in_element. IDs are valid until the next refresh."),
		),
		s.handleRefresh,
	)

	s.mcp.AddTool(
		mcp.NewTool("launch_app",
			mcp.WithDescription("Open an application, or bring it to the front if it is running. Refresh the snapshot afterwards."),
			mcp.WithString("bundle_id", mcp.Required(), mcp.Description("Bundle identifier, e.g. 'com.apple.Notes'")),
		),
		s.handleLaunch,
	)

	s.mcp.AddTool(
		mcp.NewTool("click_element",
			mcp.WithDescription("Click the element with the given ID from the latest snapshot"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Element ID from refresh_snapshot")),
		),
		s.handleClick,
	)

	s.mcp.AddTool(
		mcp.NewTool("type_in_element",
			mcp.WithDescription("Enter text into the element with the given ID from the latest snapshot"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Element ID from refresh_snapshot")),
			mcp.WithString("text", mcp.Required(), mcp.Description("Text to enter")),
		),
		s.handleType,
	)

	s.mcp.AddTool(
		mcp.NewTool("keyboard_command",
			mcp.WithDescription("Press a key combination such as 'cmd+t', 'shift+tab' or 'return'"),
			mcp.WithString("command", mcp.Required(), mcp.Description("'+'-separated modifiers (cmd, shift, option, control) and one key")),
		),
		s.handleKey,
	)

	s.mcp.AddTool(
		mcp.NewTool("wait",
			mcp.WithDescription("Wait for a number of seconds"),
			mcp.WithNumber("seconds", mcp.Required(), mcp.Description("Seconds to wait")),
		),
		s.handleWait,
	)

	s.mcp.AddTool(
		mcp.NewTool("run_plan",
			mcp.WithDescription(`Run a list of actions in order, e.g. {"actions":[{"click_element":{"id":1}},{"type_in_element":{"id":2,"text":"hi"}}]}. `+
				"Stops at the first failure unless continue_on_error is set."),
			mcp.WithString("plan", mcp.Required(), mcp.Description("Action plan as JSON or YAML")),
			mcp.WithBoolean("continue_on_error", mcp.Description("Run remaining steps after a failure")),
			mcp.WithBoolean("refresh", mcp.Description("Refresh the snapshot after the run and include it")),
		),
		s.handleRunPlan,
	)

	s.mcp.AddTool(
		mcp.NewTool("list_apps",
			mcp.WithDescription("List running applications with their bundle identifiers"),
		),
		s.handleListApps,
	)
}
