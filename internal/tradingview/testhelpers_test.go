package tradingview

import (
	"encoding/json"
	"net/http"
)

// writeJSON encodes v as JSON into w.
func writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic("test helper writeJSON: " + err.Error())
	}
}

// signinPage renders a landing page snippet with the embedded auth payload,
// the way the TradingView front page embeds it for a logged-in session.
func signinPage(id int, username, sessionHash, privateChannel, authToken string) string {
	page := `<html><script>window.user = {"id":` +
		jsonNumber(id) + `,"username":"` + username +
		`","session_hash":"` + sessionHash +
		`","private_channel":"` + privateChannel +
		`","auth_token":"` + authToken + `"};</script></html>`
	return page
}

func jsonNumber(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
