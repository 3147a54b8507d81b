package api

import (
	"embed"
	"html/template"
	"net/url"

	"github.com/perio-stage-predictor/internal/domain"
	"github.com/perio-stage-predictor/internal/service"
	"github.com/perio-stage-predictor/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"formatValue": domain.FormatValue,
}

type fieldInput struct {
	Spec  domain.FieldSpec
	Value string
}

type option struct {
	Value    string
	Selected bool
}

type sidebarData struct {
	Phase    string
	Stage    domain.Stage
	FileName string
	Contact  *domain.ClinicContact
}

type pageData struct {
	Title       string
	Placeholder string
	Fields      []fieldInput
	Genders     []option
	Classes     []option
	Error       string
	Result      *domain.PredictionResult
	Sidebar     sidebarData
}

// newPageData builds the page from the posted form, or from defaults when
// values is nil.
func (s *Server) newPageData(values url.Values, state *session.State) pageData {
	fields := make([]fieldInput, 0, len(domain.NumericFields))
	for _, spec := range domain.NumericFields {
		value := spec.FormatValue(spec.Default)
		if raw := values.Get(string(spec.Field)); raw != "" {
			value = raw
		}
		fields = append(fields, fieldInput{Spec: spec, Value: value})
	}

	gender := values.Get(string(domain.FieldGender))
	genders := make([]option, 0, len(domain.Genders))
	for _, g := range domain.Genders {
		genders = append(genders, option{Value: string(g), Selected: string(g) == gender})
	}

	class := values.Get(string(domain.FieldClass))
	classes := make([]option, 0, len(domain.DiabetesClasses))
	for _, dc := range domain.DiabetesClasses {
		classes = append(classes, option{Value: string(dc), Selected: string(dc) == class})
	}

	return pageData{
		Title:       s.config.UI.Title,
		Placeholder: service.PlaceholderOption,
		Fields:      fields,
		Genders:     genders,
		Classes:     classes,
		Sidebar:     s.sidebar(state.View()),
	}
}

func (s *Server) sidebar(view session.PanelView) sidebarData {
	data := sidebarData{Phase: view.Phase(), FileName: s.config.Report.FileName}

	switch v := view.(type) {
	case session.ReportReady:
		data.Stage = v.Result.Stage
	case session.ContactRevealed:
		data.Stage = v.Result.Stage
		contact := v.Contact
		data.Contact = &contact
	}
	return data
}

// panelResponse is the JSON form of the sidebar state.
type panelResponse struct {
	Phase        string                `json:"phase"`
	PredictionID string                `json:"prediction_id,omitempty"`
	Stage        domain.Stage          `json:"stage,omitempty"`
	ReportFile   string                `json:"report_file,omitempty"`
	Contact      *domain.ClinicContact `json:"contact,omitempty"`
}

func (s *Server) panelJSON(view session.PanelView) panelResponse {
	resp := panelResponse{Phase: view.Phase()}

	switch v := view.(type) {
	case session.ReportReady:
		resp.PredictionID = v.Result.ID
		resp.Stage = v.Result.Stage
		resp.ReportFile = s.config.Report.FileName
	case session.ContactRevealed:
		resp.PredictionID = v.Result.ID
		resp.Stage = v.Result.Stage
		resp.ReportFile = s.config.Report.FileName
		contact := v.Contact
		resp.Contact = &contact
	}
	return resp
}
