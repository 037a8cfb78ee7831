package api

import (
	"embed"
	"html/template"

	"mannequin/internal/application/services"
	"mannequin/internal/domain/entities"
	"mannequin/internal/domain/valueobjects"
	"mannequin/internal/infrastructure/i18n"
	"mannequin/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// loadingRefreshSeconds is how often the loading view polls.
const loadingRefreshSeconds = 2

type pageView struct {
	Lang string
	Dir  string
	T    i18n.TranslationSet

	Loading    bool
	ShowResult bool
	Failed     bool

	ModelImage    template.URL
	ClothingImage template.URL
	FinalImage    template.URL

	GarmentUnlocked bool
	CanGenerate     bool

	UploadField    string
	RefreshSeconds int
}

func newPageView(view entities.WizardView, set i18n.TranslationSet) pageView {
	return pageView{
		Lang:            view.Language.String(),
		Dir:             string(view.Direction),
		T:               set,
		Loading:         view.Phase == entities.PhaseLoading,
		ShowResult:      view.Phase == entities.PhaseDone || view.Phase == entities.PhaseFailed,
		Failed:          view.Failed,
		ModelImage:      imageURL(view.ModelImage),
		ClothingImage:   imageURL(view.ClothingImage),
		FinalImage:      imageURL(view.FinalImage),
		GarmentUnlocked: view.GarmentUnlocked,
		CanGenerate:     view.CanGenerate,
		UploadField:     services.UploadField,
		RefreshSeconds:  loadingRefreshSeconds,
	}
}

// imageURL marks a data URL as safe for src attributes; html/template would
// otherwise replace it with #ZgotmplZ.
func imageURL(img *valueobjects.EncodedImage) template.URL {
	if img == nil {
		return ""
	}
	return template.URL(img.String())
}

func dataURL(img *valueobjects.EncodedImage) string {
	if img == nil {
		return ""
	}
	return img.String()
}

func newStateResponse(view entities.WizardView, set i18n.TranslationSet) model.StateResponse {
	state := model.StateResponse{
		Phase:           view.Phase.String(),
		Language:        view.Language.String(),
		Direction:       string(view.Direction),
		ModelImage:      dataURL(view.ModelImage),
		ClothingImage:   dataURL(view.ClothingImage),
		FinalImage:      dataURL(view.FinalImage),
		IsLoading:       view.Phase == entities.PhaseLoading,
		GarmentUnlocked: view.GarmentUnlocked,
		CanGenerate:     view.CanGenerate,
	}
	if view.Failed {
		state.Error = set.T("errorDescription")
	}
	return state
}
