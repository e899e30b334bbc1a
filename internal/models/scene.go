package models

import "encoding/json"

// Scene is one structured unit of a breakdown: where the shot happens,
// how it is framed and what happens in it.
type Scene struct {
	Scene    int    `json:"scene"`
	Location string `json:"location"`
	Camera   string `json:"camera"`
	Action   string `json:"action"`
}

// ScenePattern is a caller-supplied hint describing a recurring shot pattern
// the generator should follow. Passed per-request, never stored server-side.
type ScenePattern struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ParseSceneBreakdown decodes a stored breakdown into a scene list.
// Accepts either a raw JSON array or a {"scenes": [...]} wrapper.
// Content that predates the structured format (old markdown breakdowns)
// decodes to an empty list so the user can regenerate, never to an error.
func ParseSceneBreakdown(content string) []Scene {
	if content == "" {
		return []Scene{}
	}

	var scenes []Scene
	if err := json.Unmarshal([]byte(content), &scenes); err == nil {
		if scenes == nil {
			return []Scene{}
		}
		return scenes
	}

	var wrapped struct {
		Scenes []Scene `json:"scenes"`
	}
	if err := json.Unmarshal([]byte(content), &wrapped); err == nil && wrapped.Scenes != nil {
		return wrapped.Scenes
	}

	return []Scene{}
}

// FormatSceneBreakdown encodes a scene list into the canonical stored form.
func FormatSceneBreakdown(scenes []Scene) string {
	if scenes == nil {
		scenes = []Scene{}
	}
	data, err := json.Marshal(scenes)
	if err != nil {
		return "[]"
	}
	return string(data)
}
