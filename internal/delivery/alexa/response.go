package alexa

import "github.com/sunnykeerthi/service-center-user/internal/domain"

const (
	speechTypeSSML  = "SSML"
	speechTypePlain = "PlainText"

	cardTypeSimple      = "Simple"
	cardTypeStandard    = "Standard"
	cardTypeLinkAccount = "LinkAccount"
)

// Response is what a handler decides before it is rendered into the platform
// envelope. ShouldEndSession defaults to true: the conversation closes unless
// a handler explicitly keeps it open.
type Response struct {
	SpeechText       string
	RepromptText     string
	CardTitle        string
	CardContent      string
	ImageURL         string
	LinkAccount      bool
	ShouldEndSession bool
	PlainText        bool
}

func NewResponse() *Response {
	return &Response{ShouldEndSession: true}
}

func (r *Response) speech(text string) *OutputSpeech {
	if r.PlainText {
		return &OutputSpeech{Type: speechTypePlain, Text: text}
	}
	return &OutputSpeech{Type: speechTypeSSML, SSML: "<speak>" + text + "</speak>"}
}

// Build renders the envelope. Session attributes are echoed only while the
// session stays open, so a finished conversation never leaks state into the
// next one.
func (r *Response) Build(state *domain.SessionState) ResponseEnvelope {
	env := ResponseEnvelope{
		Version: responseVersion,
		Response: ResponseBody{
			OutputSpeech:     r.speech(r.SpeechText),
			ShouldEndSession: r.ShouldEndSession,
		},
	}

	if r.RepromptText != "" {
		env.Response.Reprompt = &Reprompt{OutputSpeech: r.speech(r.RepromptText)}
	}

	switch {
	case r.LinkAccount:
		env.Response.Card = &Card{Type: cardTypeLinkAccount}
	case r.CardTitle != "":
		card := &Card{Type: cardTypeSimple, Title: r.CardTitle}
		if r.ImageURL != "" {
			card.Type = cardTypeStandard
			card.Text = r.CardContent
			card.Image = &CardImage{
				SmallImageURL: r.ImageURL,
				LargeImageURL: r.ImageURL,
			}
		} else {
			card.Content = r.CardContent
		}
		env.Response.Card = card
	}

	if !r.ShouldEndSession && state != nil {
		env.SessionAttributes = state.Attributes()
	}
	return env
}
