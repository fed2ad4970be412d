package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"quickmart.dev/app/internal/storeapi"
)

var ErrInvalid = errors.New("invalid session cookie")

// Session is the explicit client-side identity: the opaque backend token plus
// the user record returned at login. It exists only in cookies; the backend
// is the sole authority on whether the token is still good.
type Session struct {
	ID   string
	User storeapi.User
}

func (s Session) IsAdmin() bool    { return s.User.Role == storeapi.RoleAdmin }
func (s Session) IsCustomer() bool { return s.User.Role == storeapi.RoleCustomer }

// Codec persists a Session as two signed cookies: one for the session id,
// one for the serialized user record. Both are set at login and cleared at
// logout, unconditionally.
type Codec struct {
	Secret     []byte
	IDCookie   string
	UserCookie string
	Secure     bool
}

func NewCodec(secret []byte, secure bool) *Codec {
	return &Codec{
		Secret:     secret,
		IDCookie:   "store_session",
		UserCookie: "store_user",
		Secure:     secure,
	}
}

// id cookie format: sessionID.base64(hmac(sessionID))
func (c *Codec) encodeID(id string) string {
	return id + "." + sign(c.Secret, id)
}

func (c *Codec) decodeID(v string) (string, error) {
	// The token is opaque and may itself contain dots; the signature never
	// does, so split on the last one.
	i := strings.LastIndex(v, ".")
	if i <= 0 {
		return "", ErrInvalid
	}
	id, sig := v[:i], v[i+1:]
	if !verify(c.Secret, id, sig) {
		return "", ErrInvalid
	}
	return id, nil
}

// user cookie format: base64(json).base64(hmac)
func (c *Codec) encodeUser(u storeapi.User) (string, error) {
	b, err := json.Marshal(u)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(b)
	return payload + "." + sign(c.Secret, payload), nil
}

func (c *Codec) decodeUser(v string) (storeapi.User, error) {
	parts := strings.Split(v, ".")
	if len(parts) != 2 {
		return storeapi.User{}, ErrInvalid
	}
	if !verify(c.Secret, parts[0], parts[1]) {
		return storeapi.User{}, ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return storeapi.User{}, ErrInvalid
	}
	var u storeapi.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return storeapi.User{}, ErrInvalid
	}
	if u.Email == "" || u.Role == "" {
		return storeapi.User{}, ErrInvalid
	}
	return u, nil
}

// Set persists the session. No Max-Age: lifetime ends when the browser or a
// logout clears it, mirroring token storage with no expiry handling.
func (c *Codec) Set(ctx *gin.Context, s Session) error {
	userVal, err := c.encodeUser(s.User)
	if err != nil {
		return err
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.IDCookie, c.encodeID(s.ID), 0, "/", "", c.Secure, true)
	ctx.SetCookie(c.UserCookie, userVal, 0, "/", "", c.Secure, true)
	return nil
}

// Get decodes both cookies. Either one failing means no session.
func (c *Codec) Get(ctx *gin.Context) (Session, bool) {
	idVal, err := ctx.Cookie(c.IDCookie)
	if err != nil || idVal == "" {
		return Session{}, false
	}
	userVal, err := ctx.Cookie(c.UserCookie)
	if err != nil || userVal == "" {
		return Session{}, false
	}

	id, err := c.decodeID(idVal)
	if err != nil {
		return Session{}, false
	}
	u, err := c.decodeUser(userVal)
	if err != nil {
		return Session{}, false
	}
	return Session{ID: id, User: u}, true
}

func (c *Codec) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.IDCookie, "", -1, "/", "", c.Secure, true)
	ctx.SetCookie(c.UserCookie, "", -1, "/", "", c.Secure, true)
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func verify(secret []byte, payload, sig string) bool {
	return hmac.Equal([]byte(sign(secret, payload)), []byte(sig))
}
