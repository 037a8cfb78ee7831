package model

// TryOnAPIRequest is the body of POST /api/tryon. Both images are data URLs
// (data:<mime>;base64,<payload>).
type TryOnAPIRequest struct {
	ModelImage   string `json:"modelImage"`
	GarmentImage string `json:"garmentImage"`
	// Language is "en" or "fa"; it selects the prompt and the error text
	Language string `json:"language,omitempty"`
}

// TryOnAPIResponse carries either the generated image as a data URL or a
// user-facing error message.
type TryOnAPIResponse struct {
	Image string `json:"image,omitempty"`
	Error string `json:"error,omitempty"`
}

// StateResponse is the JSON snapshot returned by GET /api/state.
type StateResponse struct {
	Phase           string `json:"phase"`
	Language        string `json:"language"`
	Direction       string `json:"direction"`
	ModelImage      string `json:"modelImage,omitempty"`
	ClothingImage   string `json:"clothingImage,omitempty"`
	FinalImage      string `json:"finalImage,omitempty"`
	IsLoading       bool   `json:"isLoading"`
	Error           string `json:"error,omitempty"`
	GarmentUnlocked bool   `json:"garmentUnlocked"`
	CanGenerate     bool   `json:"canGenerate"`
}
