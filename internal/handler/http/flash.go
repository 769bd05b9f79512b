// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-image-keeper/internal/utils"
	"github.com/MKhiriev/go-image-keeper/models"
)

const (
	flashCookieName = "flash"
	maxFlashes      = 8
)

// flashStore keeps one-shot notices in a cookie between a redirect and the
// page rendered after it. The cookie value is "<base64 json>.<hmac>"; values
// with a bad signature are dropped silently.
type flashStore struct {
	key    string
	secure bool
}

func newFlashStore(key string, secure bool) *flashStore {
	return &flashStore{key: key, secure: secure}
}

// add appends flashes to the ones still pending in the request and writes
// them back to the client.
func (s *flashStore) add(w http.ResponseWriter, r *http.Request, flashes ...models.Flash) {
	all := append(s.read(r), flashes...)
	if len(all) > maxFlashes {
		all = all[len(all)-maxFlashes:]
	}

	payload, err := json.Marshal(all)
	if err != nil {
		return
	}

	value := base64.RawURLEncoding.EncodeToString(payload)
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value + "." + utils.HashString(value, s.key),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// pop returns the pending flashes and expires the cookie.
func (s *flashStore) pop(w http.ResponseWriter, r *http.Request) []models.Flash {
	if _, err := r.Cookie(flashCookieName); err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return s.read(r)
}

func (s *flashStore) read(r *http.Request) []models.Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}

	value, signature, ok := strings.Cut(cookie.Value, ".")
	if !ok || !utils.VerifyHashString(value, signature, s.key) {
		return nil
	}

	payload, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}

	var flashes []models.Flash
	if err = json.Unmarshal(payload, &flashes); err != nil {
		return nil
	}

	return flashes
}
