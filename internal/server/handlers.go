package server

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/desktop-agent/internal/executor"
	"github.com/mj1618/desktop-agent/internal/output"
	"github.com/mj1618/desktop-agent/internal/plan"
)

// resultToText serializes a result to YAML for the MCP response.
func resultToText(v interface{}) string {
	s, err := output.YAML(v)
	if err != nil {
		if r, ok := v.(executor.Result); ok {
			return fmt.Sprintf("ok: %v\naction: %s\nerror: %s", r.OK, r.Action, r.Error)
		}
		return err.Error()
	}
	return s
}

func actionResult(r executor.Result) *mcp.CallToolResult {
	if !r.OK {
		return mcp.NewToolResultError(resultToText(r))
	}
	return mcp.NewToolResultText(resultToText(r))
}

func badRequest(action string, err error) *mcp.CallToolResult {
	return actionResult(executor.Result{Action: action, Kind: executor.KindInvalidCommand, Error: err.Error()})
}

func (s *Server) handleRefresh(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.sess.RefreshSnapshot()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleLaunch(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("bundle_id")
	if err != nil {
		return badRequest(executor.ActionLaunch, err), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return actionResult(s.sess.LaunchApplication(id)), nil
}

func (s *Server) handleClick(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireInt("id")
	if err != nil {
		return badRequest(executor.ActionClick, err), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return actionResult(s.sess.Click(id)), nil
}

func (s *Server) handleType(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireInt("id")
	if err != nil {
		return badRequest(executor.ActionType, err), nil
	}
	text, err := request.RequireString("text")
	if err != nil {
		return badRequest(executor.ActionType, err), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return actionResult(s.sess.TypeText(id, text)), nil
}

func (s *Server) handleKey(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	command, err := request.RequireString("command")
	if err != nil {
		return badRequest(executor.ActionKeyboard, err), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return actionResult(s.sess.ExecuteKeyboardCommand(command)), nil
}

func (s *Server) handleWait(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	seconds, err := request.RequireFloat("seconds")
	if err != nil {
		return badRequest(executor.ActionWait, err), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return actionResult(s.sess.Wait(time.Duration(seconds * float64(time.Second)))), nil
}

func (s *Server) handleRunPlan(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("plan")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	p, err := plan.Parse([]byte(raw))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts := plan.Options{
		ContinueOnError: request.GetBool("continue_on_error", false),
		RefreshAfter:    request.GetBool("refresh", false),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rep := plan.Run(s.sess, p, opts)
	if !rep.OK {
		return mcp.NewToolResultError(resultToText(rep)), nil
	}
	return mcp.NewToolResultText(resultToText(rep)), nil
}

func (s *Server) handleListApps(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	apps, err := s.sess.RunningApps()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultToText(output.AppsResult{Apps: apps})), nil
}
