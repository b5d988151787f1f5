package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/dev-tools-mcp/internal/codec"
	"github.com/ironsheep/dev-tools-mcp/internal/colors"
	"github.com/ironsheep/dev-tools-mcp/internal/datetime"
	"github.com/ironsheep/dev-tools-mcp/internal/eyedropper"
	"github.com/ironsheep/dev-tools-mcp/internal/generate"
	"github.com/ironsheep/dev-tools-mcp/internal/logger"
	"github.com/ironsheep/dev-tools-mcp/internal/qrcode"
	"github.com/ironsheep/dev-tools-mcp/internal/textutil"
	"github.com/ironsheep/dev-tools-mcp/internal/units"
)

// ErrInvalidArguments marks arguments that fail to decode or validate.
var ErrInvalidArguments = errors.New("invalid arguments")

// ErrUnknownTool is returned for a tools/call naming no registered tool.
var ErrUnknownTool = errors.New("unknown tool")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "unit_convert", "color_convert").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool failures return -32000, bad arguments -32602 and a rejected call
// -32029.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, CodeInvalidParams, "Invalid params", err.Error())
	}

	callID := uuid.NewString()
	log := logger.L().With("call_id", callID, "tool", params.Name)

	if !s.limiter.Allow() {
		log.Warn("tool.rate_limited")
		return s.errorResponse(req.ID, CodeRateLimited, "Rate limit exceeded", "too many tool calls, retry later")
	}

	start := time.Now()
	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	elapsed := time.Since(start)

	if err != nil {
		log.Info("tool.call", "duration", elapsed, "ok", false, "error", err.Error())
		if errors.Is(err, ErrInvalidArguments) {
			return s.errorResponse(req.ID, CodeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, CodeToolFailed, "Tool execution failed", err.Error())
	}
	log.Info("tool.call", "duration", elapsed, "ok", true)

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch name {
	// Units
	case "unit_convert":
		return s.handleUnitConvert(args)
	case "unit_list":
		return s.handleUnitList(args)

	// Colors
	case "color_convert":
		return s.handleColorConvert(args)
	case "color_sample_image":
		return s.handleColorSampleImage(args)
	case "color_palette":
		return s.handleColorPalette(args)
	case "color_loupe":
		return s.handleColorLoupe(args)
	case "image_cache_clear":
		return s.handleImageCacheClear(args)

	// Encoders
	case "base64_encode", "base64_decode", "url_encode", "url_decode":
		return s.handleCodec(name, args)

	// Generators
	case "password_generate":
		return s.handlePasswordGenerate(args)
	case "dice_roll":
		return s.handleDiceRoll(args)
	case "dice_history":
		return s.handleDiceHistory(args)
	case "lorem_words":
		return s.handleLoremWords(args)

	// Text
	case "regex_test":
		return s.handleRegexTest(args)
	case "text_diff":
		return s.handleTextDiff(args)
	case "markdown_render":
		return s.handleMarkdownRender(args)

	// Time
	case "age_calculate":
		return s.handleAgeCalculate(args)
	case "pomodoro_plan":
		return s.handlePomodoroPlan(args)

	// Images
	case "qr_generate":
		return s.handleQRGenerate(args)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
}

// decodeArgs unmarshals args into v and checks its validate tags. Missing
// arguments decode as an empty object.
func (s *Server) decodeArgs(args json.RawMessage, v interface{}) error {
	if len(bytes.TrimSpace(args)) == 0 || bytes.Equal(bytes.TrimSpace(args), []byte("null")) {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return nil
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// looseString accepts a JSON string or a bare JSON number.
type looseString string

func (l *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = looseString(s)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*l = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*l = looseString(n.String())
	return nil
}

// === Unit Handlers ===

type unitConvertArgs struct {
	Category string      `json:"category" validate:"required"`
	From     string      `json:"from"`
	To       string      `json:"to"`
	Value    looseString `json:"value"`
	Strict   *bool       `json:"strict"`
}

func (s *Server) handleUnitConvert(args json.RawMessage) (interface{}, error) {
	var a unitConvertArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	strict := s.config().Units.Strict
	if a.Strict != nil {
		strict = *a.Strict
	}
	req := units.Request{Category: a.Category, From: a.From, To: a.To, Value: string(a.Value)}
	return req.Convert(strict)
}

type unitListArgs struct {
	Category string `json:"category"`
}

type unitCategoryInfo struct {
	Category units.Category `json:"category"`
	BaseUnit string         `json:"base_unit"`
	Units    []string       `json:"units"`
}

func (s *Server) handleUnitList(args json.RawMessage) (interface{}, error) {
	var a unitListArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}

	cats := units.Categories()
	if a.Category != "" {
		c, err := units.ParseCategory(a.Category)
		if err != nil {
			return nil, err
		}
		cats = []units.Category{c}
	}

	out := make([]unitCategoryInfo, 0, len(cats))
	for _, c := range cats {
		names, err := units.Units(c)
		if err != nil {
			return nil, err
		}
		base, err := units.BaseUnit(c)
		if err != nil {
			return nil, err
		}
		out = append(out, unitCategoryInfo{Category: c, BaseUnit: base, Units: names})
	}
	return map[string]interface{}{"categories": out}, nil
}

// === Color Handlers ===

type colorConvertArgs struct {
	Hex string `json:"hex"`
	R   *int   `json:"r" validate:"omitempty,min=0,max=255"`
	G   *int   `json:"g" validate:"omitempty,min=0,max=255"`
	B   *int   `json:"b" validate:"omitempty,min=0,max=255"`
}

func (s *Server) handleColorConvert(args json.RawMessage) (interface{}, error) {
	var a colorConvertArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Hex != "" {
		return colors.Describe(a.Hex)
	}
	if a.R == nil || a.G == nil || a.B == nil {
		return nil, fmt.Errorf("%w: provide hex or all of r, g, b", ErrInvalidArguments)
	}
	return colors.FromRGB(uint8(*a.R), uint8(*a.G), uint8(*a.B)).Describe(), nil
}

type colorSampleArgs struct {
	Path string `json:"path" validate:"required"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleColorSampleImage(args json.RawMessage) (interface{}, error) {
	var a colorSampleArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return eyedropper.SampleColor(img, a.X, a.Y)
}

type colorPaletteArgs struct {
	Path   string             `json:"path" validate:"required"`
	Count  int                `json:"count" validate:"omitempty,min=1,max=32"`
	Region *eyedropper.Region `json:"region"`
}

func (s *Server) handleColorPalette(args json.RawMessage) (interface{}, error) {
	var a colorPaletteArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	swatches, err := eyedropper.Palette(img, a.Count, a.Region)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"colors": swatches}, nil
}

type colorLoupeArgs struct {
	Path string `json:"path" validate:"required"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	eyedropper.LoupeOptions
}

func (s *Server) handleColorLoupe(args json.RawMessage) (interface{}, error) {
	var a colorLoupeArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return eyedropper.Loupe(img, a.X, a.Y, a.LoupeOptions)
}

type imageCacheClearArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageCacheClear(args json.RawMessage) (interface{}, error) {
	var a imageCacheClearArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	cleared := 0
	if a.Path == "" {
		cleared = s.cache.Clear()
	} else if s.cache.Evict(a.Path) {
		cleared = 1
	}
	return map[string]interface{}{"cleared": cleared, "cached": s.cache.Len()}, nil
}

// === Encoder Handlers ===

type textArgs struct {
	Text string `json:"text"`
}

type codecResult struct {
	Input  string `json:"input"`
	Result string `json:"result"`
}

func (s *Server) handleCodec(name string, args json.RawMessage) (interface{}, error) {
	var a textArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}

	var out string
	var err error
	switch name {
	case "base64_encode":
		out = codec.EncodeBase64(a.Text)
	case "base64_decode":
		out, err = codec.DecodeBase64(a.Text)
	case "url_encode":
		out = codec.EncodeURIComponent(a.Text)
	case "url_decode":
		out, err = codec.DecodeURIComponent(a.Text)
	}
	if err != nil {
		return nil, err
	}
	return codecResult{Input: a.Text, Result: out}, nil
}

// === Generator Handlers ===

type passwordArgs struct {
	Length    int   `json:"length" validate:"omitempty,min=4,max=128"`
	Uppercase *bool `json:"uppercase"`
	Lowercase *bool `json:"lowercase"`
	Numbers   *bool `json:"numbers"`
	Symbols   *bool `json:"symbols"`
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func (s *Server) handlePasswordGenerate(args json.RawMessage) (interface{}, error) {
	var a passwordArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	opts := generate.PasswordOptions{
		Length:    a.Length,
		Uppercase: boolOr(a.Uppercase, true),
		Lowercase: boolOr(a.Lowercase, true),
		Numbers:   boolOr(a.Numbers, true),
		Symbols:   boolOr(a.Symbols, true),
	}
	if opts.Length == 0 {
		opts.Length = s.config().Password.DefaultLength
	}
	pw, err := generate.Password(opts)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"password": pw, "length": len(pw)}, nil
}

type diceRollArgs struct {
	Sides int `json:"sides" validate:"omitempty,min=1,max=1000000"`
}

func (s *Server) handleDiceRoll(args json.RawMessage) (interface{}, error) {
	var a diceRollArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Sides == 0 {
		a.Sides = 6
	}

	s.mu.RLock()
	h := s.dice
	s.mu.RUnlock()

	roll, err := h.Roll(a.Sides)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"roll": roll, "history": h.Rolls()}, nil
}

type diceHistoryArgs struct {
	Clear bool `json:"clear"`
}

func (s *Server) handleDiceHistory(args json.RawMessage) (interface{}, error) {
	var a diceHistoryArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}

	s.mu.RLock()
	h := s.dice
	s.mu.RUnlock()

	if a.Clear {
		h.Clear()
	}
	return map[string]interface{}{"history": h.Rolls()}, nil
}

type loremArgs struct {
	Count int `json:"count" validate:"min=0"`
}

func (s *Server) handleLoremWords(args json.RawMessage) (interface{}, error) {
	var a loremArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}

	s.mu.RLock()
	l := s.lorem
	s.mu.RUnlock()

	text := l.Words(a.Count)
	words := 0
	if text != "" {
		words = len(bytes.Fields([]byte(text)))
	}
	return map[string]interface{}{"text": text, "words": words}, nil
}

// === Text Handlers ===

type regexArgs struct {
	Pattern string `json:"pattern"`
	Text    string `json:"text"`
	Flags   string `json:"flags"`
}

func (s *Server) handleRegexTest(args json.RawMessage) (interface{}, error) {
	var a regexArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	flags, err := textutil.ParseFlags(a.Flags)
	if err != nil {
		return nil, err
	}
	return textutil.Test(a.Pattern, a.Text, flags)
}

type diffArgs struct {
	Left    string `json:"left"`
	Right   string `json:"right"`
	Context *int   `json:"context" validate:"omitempty,min=0,max=100"`
}

func (s *Server) handleTextDiff(args json.RawMessage) (interface{}, error) {
	var a diffArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	lines := 3
	if a.Context != nil {
		lines = *a.Context
	}

	unified, err := textutil.UnifiedDiff(a.Left, a.Right, lines)
	if err != nil {
		return nil, err
	}
	res := textutil.DiffLines(a.Left, a.Right)
	return map[string]interface{}{
		"parts":   res.Parts,
		"added":   res.Added,
		"removed": res.Removed,
		"same":    res.Same,
		"unified": unified,
	}, nil
}

type markdownArgs struct {
	Markdown string `json:"markdown"`
}

func (s *Server) handleMarkdownRender(args json.RawMessage) (interface{}, error) {
	var a markdownArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	html, err := textutil.RenderHTML(a.Markdown)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"html": html}, nil
}

// === Time Handlers ===

type ageArgs struct {
	BirthDate string `json:"birth_date" validate:"required"`
	Today     string `json:"today"`
}

func (s *Server) handleAgeCalculate(args json.RawMessage) (interface{}, error) {
	var a ageArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	birth, err := datetime.ParseDate(a.BirthDate)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if a.Today != "" {
		if now, err = datetime.ParseDate(a.Today); err != nil {
			return nil, err
		}
	}
	return datetime.Age(birth, now)
}

type pomodoroArgs struct {
	Phases           int `json:"phases" validate:"omitempty,min=1,max=100"`
	WorkMinutes      int `json:"work_minutes" validate:"omitempty,min=1,max=240"`
	BreakMinutes     int `json:"break_minutes" validate:"omitempty,min=1,max=240"`
	LongBreakMinutes int `json:"long_break_minutes" validate:"omitempty,min=1,max=240"`
	LongBreakEvery   int `json:"long_break_every" validate:"omitempty,min=1,max=24"`
}

func (s *Server) handlePomodoroPlan(args json.RawMessage) (interface{}, error) {
	var a pomodoroArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Phases == 0 {
		a.Phases = 8
	}

	settings := s.config().Pomodoro
	if a.WorkMinutes > 0 {
		settings.WorkMinutes = a.WorkMinutes
	}
	if a.BreakMinutes > 0 {
		settings.BreakMinutes = a.BreakMinutes
	}
	if a.LongBreakMinutes > 0 {
		settings.LongBreakMinutes = a.LongBreakMinutes
	}
	if a.LongBreakEvery > 0 {
		settings.LongBreakEvery = a.LongBreakEvery
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	phases := settings.Plan(a.Phases)
	total := 0
	for _, p := range phases {
		total += p.Minutes
	}
	return map[string]interface{}{
		"settings":      settings,
		"phases":        phases,
		"total_minutes": total,
	}, nil
}

// === Image Handlers ===

type qrArgs struct {
	Text       string `json:"text" validate:"required"`
	Size       int    `json:"size" validate:"omitempty,min=64,max=1024"`
	Foreground string `json:"fg_color"`
	Background string `json:"bg_color"`
}

func (s *Server) handleQRGenerate(args json.RawMessage) (interface{}, error) {
	var a qrArgs
	if err := s.decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Size == 0 {
		a.Size = s.config().QR.DefaultSize
	}
	return qrcode.Generate(a.Text, qrcode.Options{Size: a.Size, Foreground: a.Foreground, Background: a.Background})
}
