package stability

// https://platform.stability.ai/docs/api-reference#tag/SDXL-1.0-and-SD1.6/operation/textToImage

type GenerationRequest struct {
	TextPrompts []TextPrompt `json:"text_prompts"`

	CFGScale int `json:"cfg_scale"`
	Samples  int `json:"samples"`
	Steps    int `json:"steps"`

	Width  int `json:"width"`
	Height int `json:"height"`
}

type TextPrompt struct {
	Text string `json:"text"`
}

type GenerationResponse struct {
	Artifacts []Artifact `json:"artifacts"`
}

type Artifact struct {
	Base64 string `json:"base64"`

	Seed         int64        `json:"seed,omitempty"`
	FinishReason FinishReason `json:"finishReason,omitempty"`
}

type FinishReason string

const (
	FinishReasonSuccess         FinishReason = "SUCCESS"
	FinishReasonError           FinishReason = "ERROR"
	FinishReasonContentFiltered FinishReason = "CONTENT_FILTERED"
)
