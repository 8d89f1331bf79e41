package web

import (
	"net/http"
	"strconv"

	"instock/internal/forms"
)

// handlePhoneFormat re-renders the phone input with the in-progress value
// normalized into the +1 (xxx) xxx-xxxx pattern. The caret position comes
// along in the request and is shifted by the formatting delta so it lands
// where the user expects.
func (s *Server) handlePhoneFormat(w http.ResponseWriter, r *http.Request) {
	raw := r.FormValue("contactPhone")
	caret, err := strconv.Atoi(r.FormValue("caret"))
	if err != nil {
		caret = len(raw)
	}

	formatted := forms.FormatPhoneNumber(raw)
	s.renderPartial(w, "partials/phone_input.html", "phone_input", phoneView{
		Value:   formatted,
		Caret:   forms.AdjustCaret(caret, len(raw), len(formatted)),
		Focused: true,
	})
}
