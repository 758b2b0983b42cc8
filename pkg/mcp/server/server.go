package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/adrianliechti/wingman-diffusion/pkg/tool"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	http.Handler

	server *mcp.Server
}

func New(ctx context.Context, name, version string, tools []tool.Provider) (*Server, error) {
	serverImpl := &mcp.Implementation{
		Name:    name,
		Version: version,
	}

	serverOpts := &mcp.ServerOptions{
		KeepAlive: time.Second * 30,
	}

	server := mcp.NewServer(serverImpl, serverOpts)

	handlerOpts := &mcp.StreamableHTTPOptions{
		Stateless: true,
	}

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, handlerOpts)

	s := &Server{
		Handler: handler,

		server: server,
	}

	if err := s.registerTools(ctx, tools); err != nil {
		return nil, err
	}

	return s, nil
}

// MCP returns the underlying server, e.g. to connect it to another transport.
func (s *Server) MCP() *mcp.Server {
	return s.server
}

func (s *Server) registerTools(ctx context.Context, providers []tool.Provider) error {
	var result error

	for _, p := range providers {
		tools, err := p.Tools(ctx)

		if err != nil {
			result = errors.Join(result, err)
			continue
		}

		for _, t := range tools {
			data, _ := json.Marshal(t.Parameters)

			schema := new(jsonschema.Schema)

			if err := schema.UnmarshalJSON(data); err != nil {
				result = errors.Join(result, err)
				continue
			}

			if schema.Type != "object" {
				result = errors.Join(result, errors.New("tool "+t.Name+": parameters must be an object"))
				continue
			}

			s.server.AddTool(&mcp.Tool{
				Name:        t.Name,
				Description: t.Description,

				InputSchema: schema,
			}, toolHandler(p, t.Name))
		}
	}

	return result
}

func toolHandler(p tool.Provider, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args map[string]any

		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				return errorResult(err), nil
			}
		}

		result, err := p.Execute(ctx, name, args)

		if err != nil {
			return errorResult(err), nil
		}

		switch v := result.(type) {
		case *mcp.CallToolResult:
			return v, nil

		case string:
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{
						Text: v,
					},
				},
			}, nil

		default:
			data, _ := json.Marshal(v)

			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{
						Text: string(data),
					},
				},
			}, nil
		}
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,

		Content: []mcp.Content{
			&mcp.TextContent{
				Text: err.Error(),
			},
		},
	}
}
