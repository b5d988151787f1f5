package server

import (
	"encoding/json"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"unit_convert",
		"unit_list",
		"color_convert",
		"color_sample_image",
		"color_palette",
		"color_loupe",
		"image_cache_clear",
		"base64_encode",
		"base64_decode",
		"url_encode",
		"url_decode",
		"password_generate",
		"dice_roll",
		"dice_history",
		"lorem_words",
		"regex_test",
		"text_diff",
		"markdown_render",
		"age_calculate",
		"pomodoro_plan",
		"qr_generate",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("tool count: got %d, want %d", len(tools), len(expectedTools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}

			// Every required field must be a declared property.
			if required, ok := tool.InputSchema["required"].([]string); ok {
				for _, r := range required {
					if _, ok := props[r]; !ok {
						t.Errorf("required %q is not a property", r)
					}
				}
			}
		})
	}
}

func TestToolDefinitions_Dispatchable(t *testing.T) {
	s := New(nil, "test")

	// Every listed tool must be known to executeTool: an empty call may fail
	// validation, but never as an unknown tool.
	for _, tool := range GetToolDefinitions() {
		resp := callTool(t, s, tool.Name, map[string]interface{}{})
		if resp.Error == nil {
			continue
		}
		if data, _ := resp.Error.Data.(string); len(data) >= 12 && data[:12] == "unknown tool" {
			t.Errorf("%s is listed but not dispatched", tool.Name)
		}
	}
}

func TestToolDefinitions_UnitCategoryEnum(t *testing.T) {
	var tool Tool
	for _, tt := range GetToolDefinitions() {
		if tt.Name == "unit_convert" {
			tool = tt
		}
	}

	props := tool.InputSchema["properties"].(map[string]interface{})
	enum := props["category"].(map[string]interface{})["enum"].([]string)

	want := map[string]bool{"length": true, "weight": true, "volume": true, "temperature": true}
	for _, c := range enum {
		delete(want, c)
	}
	for missing := range want {
		t.Errorf("unit_convert category enum missing %q", missing)
	}
}

func TestToolDefinitions_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(GetToolDefinitions())
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	for _, d := range decoded {
		if _, ok := d["inputSchema"]; !ok {
			t.Errorf("%v: missing inputSchema", d["name"])
		}
	}
}
