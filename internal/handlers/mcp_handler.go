package handlers

import (
	"bytes"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"

	"alfredoptarigan/taste-recommender/internal/logging"
	"alfredoptarigan/taste-recommender/internal/metrics"
	"alfredoptarigan/taste-recommender/internal/models"
	"alfredoptarigan/taste-recommender/internal/services"
	"alfredoptarigan/taste-recommender/internal/validation"
)

const (
	ProtocolVersion         = "2025-06-18"
	FallbackProtocolVersion = "2025-03-26"
	protocolVersionHeader   = "MCP-Protocol-Version"
)

var supportedProtocolVersions = []string{ProtocolVersion, FallbackProtocolVersion}

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("json-rpc %d: %s", e.Code, e.Message)
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type toolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

type toolContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type toolResult struct {
	Content []toolContent `json:"content"`
	IsError bool          `json:"isError"`
	Meta    any           `json:"_meta,omitempty"`
}

func textResult(text string, meta any) *toolResult {
	return &toolResult{Content: []toolContent{{Type: "text", Text: text}}, Meta: meta}
}

type toolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

var contentTypeSchema = map[string]any{
	"type":        "string",
	"enum":        []string{"tv", "movie", "podcast", "mixed"},
	"default":     "mixed",
	"description": "Type of content to recommend",
}

var toolDefinitions = []toolDefinition{
	{
		Name:        "validate",
		Description: "Returns the server owner's phone number for client validation",
		InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
	},
	{
		Name:        "get_taste_recommendations",
		Description: "Get personalized TV, movie and podcast recommendations from a free-text description of taste",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"user_input": map[string]any{
					"type":        "string",
					"description": "What the user likes, wants, or content they enjoyed",
				},
				"content_type": contentTypeSchema,
				"current_mood": map[string]any{
					"type":        "string",
					"description": "Current mood or energy level (optional)",
				},
				"time_available": map[string]any{
					"type":        "string",
					"description": "Time available for watching or listening (optional)",
				},
				"viewing_situation": map[string]any{
					"type":        "string",
					"description": "Viewing context: alone, with friends, family (optional)",
				},
			},
			"required": []string{"user_input"},
		},
	},
	{
		Name:        "extract_taste_profile",
		Description: "Extract a structured taste profile from free text",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"user_input": map[string]any{
					"type":        "string",
					"description": "Text to analyze for taste elements",
				},
				"content_type": contentTypeSchema,
			},
			"required": []string{"user_input"},
		},
	},
	{
		Name:        "handle_contextual_request",
		Description: "Handle requests like 'something like X but not exactly', 'I don't know what I want' or 'surprise me'",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"user_input": map[string]any{
					"type":        "string",
					"description": "The user's request",
				},
				"request_type": map[string]any{
					"type": "string",
					"enum": []string{
						string(services.RequestSomethingLikeBut),
						string(services.RequestDontKnow),
						string(services.RequestSurpriseMe),
						string(services.RequestGeneral),
					},
					"description": "Type of contextual request",
				},
			},
			"required": []string{"user_input", "request_type"},
		},
	},
}

type toolFunc func(ctx context.Context, args json.RawMessage) (*toolResult, error)

type MCPHandler struct {
	tasteService services.TasteService
	ownerNumber  string
	tools        map[string]toolFunc
}

func NewMCPHandler(tasteService services.TasteService, ownerNumber string) *MCPHandler {
	h := &MCPHandler{
		tasteService: tasteService,
		ownerNumber:  ownerNumber,
	}
	h.tools = map[string]toolFunc{
		"validate":                  h.callValidate,
		"get_taste_recommendations": h.callRecommend,
		"extract_taste_profile":     h.callExtractProfile,
		"handle_contextual_request": h.callContextual,
	}
	return h
}

// MCPAuth guards the endpoint with a static bearer token. A missing header is
// a 401, a wrong token a 403.
func MCPAuth(token string) fiber.Handler {
	return keyauth.New(keyauth.Config{
		KeyLookup:  "header:" + fiber.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(_ *fiber.Ctx, key string) (bool, error) {
			if subtle.ConstantTimeCompare([]byte(key), []byte(token)) == 1 {
				return true, nil
			}
			return false, keyauth.ErrMissingOrMalformedAPIKey
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if c.Get(fiber.HeaderAuthorization) == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Missing bearer token",
				})
			}
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Invalid authentication token",
			})
		},
	})
}

// Handle handles POST /mcp
func (h *MCPHandler) Handle(c *fiber.Ctx) error {
	version := c.Get(protocolVersionHeader)
	if version == "" {
		version = FallbackProtocolVersion
	}
	if !isSupportedVersion(version) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Unsupported MCP protocol version: %s. Supported versions: %s",
				version, strings.Join(supportedProtocolVersions, ", ")),
		})
	}
	c.Set(protocolVersionHeader, version)

	body := bytes.TrimSpace(c.Body())
	if len(body) > 0 && body[0] == '[' {
		metrics.RecordMCPCall("batch", "", errors.New("batch"))
		return c.Status(fiber.StatusBadRequest).JSON(rpcResponse{
			JSONRPC: "2.0",
			Error: &rpcError{
				Code:    codeInvalidRequest,
				Message: "JSON-RPC batching is not supported",
			},
		})
	}

	var req rpcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		metrics.RecordMCPCall("", "", err)
		return c.JSON(rpcResponse{
			JSONRPC: "2.0",
			Error:   &rpcError{Code: codeParseError, Message: "Parse error"},
		})
	}
	if req.Method == "" {
		return c.JSON(rpcResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &rpcError{Code: codeInvalidRequest, Message: "Invalid Request: method is required"},
		})
	}

	// Notifications carry no id and get no body.
	if len(req.ID) == 0 && strings.HasPrefix(req.Method, "notifications/") {
		metrics.RecordMCPCall(req.Method, "", nil)
		return c.SendStatus(fiber.StatusAccepted)
	}

	ctx := services.WithSource(c.UserContext(), "mcp")
	result, tool, err := h.dispatch(ctx, version, req)
	metrics.RecordMCPCall(req.Method, tool, err)

	resp := rpcResponse{JSONRPC: "2.0", ID: req.ID}
	if err != nil {
		var rerr *rpcError
		if !errors.As(err, &rerr) {
			logging.Error().Err(err).Str("method", req.Method).Str("tool", tool).Msg("MCP call failed")
			rerr = &rpcError{Code: codeInternalError, Message: "Internal error"}
		}
		resp.Error = rerr
	} else {
		resp.Result = result
	}
	return c.JSON(resp)
}

func (h *MCPHandler) dispatch(ctx context.Context, version string, req rpcRequest) (any, string, error) {
	switch req.Method {
	case "initialize":
		return h.initialize(version), "", nil
	case "tools/list":
		return fiber.Map{"tools": toolDefinitions}, "", nil
	case "tools/call":
		var params toolCallParams
		if len(req.Params) == 0 {
			return nil, "", &rpcError{Code: codeInvalidParams, Message: "Missing parameters for tools/call"}
		}
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return nil, "", &rpcError{Code: codeInvalidParams, Message: "Invalid params", Data: err.Error()}
		}
		if params.Name == "" {
			return nil, "", &rpcError{Code: codeInvalidParams, Message: "Missing tool name"}
		}
		call, ok := h.tools[params.Name]
		if !ok {
			return nil, "unknown", &rpcError{Code: codeInvalidParams, Message: "Unknown tool: " + params.Name}
		}
		result, err := call(ctx, params.Arguments)
		return result, params.Name, err
	default:
		return nil, "", &rpcError{Code: codeMethodNotFound, Message: "Method not found: " + req.Method}
	}
}

func (h *MCPHandler) initialize(version string) fiber.Map {
	return fiber.Map{
		"protocolVersion": version,
		"serverInfo": fiber.Map{
			"name":        ServiceName,
			"version":     ServiceVersion,
			"description": "Taste-based TV, movie and podcast recommendation engine",
		},
		"capabilities": fiber.Map{
			"tools":     fiber.Map{"list": true, "call": true},
			"resources": fiber.Map{"list": false, "read": false},
			"prompts":   fiber.Map{"list": false, "get": false},
		},
	}
}

func (h *MCPHandler) callValidate(_ context.Context, _ json.RawMessage) (*toolResult, error) {
	return textResult(h.ownerNumber, nil), nil
}

func (h *MCPHandler) callRecommend(ctx context.Context, args json.RawMessage) (*toolResult, error) {
	var req models.RecommendRequest
	if err := decodeArguments(args, &req); err != nil {
		return nil, err
	}
	resp, err := h.tasteService.Recommend(ctx, req)
	if err != nil {
		return toolFailure(err, "Sorry, I couldn't analyze your taste preferences. Could you rephrase or tell me more about what you're looking for?")
	}
	return textResult(resp.FormattedText, resp), nil
}

func (h *MCPHandler) callExtractProfile(ctx context.Context, args json.RawMessage) (*toolResult, error) {
	var req models.ProfileRequest
	if err := decodeArguments(args, &req); err != nil {
		return nil, err
	}
	resp, err := h.tasteService.ExtractProfile(ctx, req)
	if err != nil {
		return toolFailure(err, "Sorry, I couldn't analyze your taste profile. Please try again with more details.")
	}
	return textResult(resp.Summary, resp), nil
}

func (h *MCPHandler) callContextual(ctx context.Context, args json.RawMessage) (*toolResult, error) {
	var req models.ContextualRequest
	if err := decodeArguments(args, &req); err != nil {
		return nil, err
	}
	resp, err := h.tasteService.Contextual(ctx, req)
	if err != nil {
		return toolFailure(err, "I can help you find something to watch or listen to. Could you tell me more about what you're looking for?")
	}
	return textResult(resp.Response, resp), nil
}

// decodeArguments fills dst from tool arguments and validates it. Failures
// surface as invalid params.
func decodeArguments(args json.RawMessage, dst any) error {
	if len(args) > 0 {
		if err := json.Unmarshal(args, dst); err != nil {
			return &rpcError{Code: codeInvalidParams, Message: "Invalid params", Data: err.Error()}
		}
	}
	if err := validation.ValidateStruct(dst); err != nil {
		return &rpcError{Code: codeInvalidParams, Message: "Invalid params", Data: err.Error()}
	}
	return nil
}

// toolFailure turns boundary errors into invalid params and anything else into
// an isError tool result carrying a friendly message.
func toolFailure(err error, friendly string) (*toolResult, error) {
	if errors.Is(err, models.ErrMissingText) ||
		errors.Is(err, models.ErrInvalidContentType) ||
		errors.Is(err, models.ErrInvalidRequestType) {
		return nil, &rpcError{Code: codeInvalidParams, Message: "Invalid params", Data: err.Error()}
	}
	logging.Warn().Err(err).Msg("MCP tool execution failed")
	result := textResult(friendly, fiber.Map{"success": false, "error": err.Error()})
	result.IsError = true
	return result, nil
}

func isSupportedVersion(v string) bool {
	for _, s := range supportedProtocolVersions {
		if s == v {
			return true
		}
	}
	return false
}
