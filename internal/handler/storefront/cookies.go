package storefront

import "net/http"

const sessionCookieName = "vitrine_session"

// sessionCookieMaxAge keeps anonymous carts around for 30 days.
const sessionCookieMaxAge = 30 * 24 * 60 * 60

// GetSessionIDFromCookie retrieves the session ID from the session cookie.
// Returns empty string if the cookie is not present.
func GetSessionIDFromCookie(r *http.Request) string {
	c, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// SetSessionCookie sets the session cookie with appropriate security settings.
func SetSessionCookie(w http.ResponseWriter, sessionID string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   sessionCookieMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
