package routehandlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"

	"github.com/coreybb/libris/webutil"
)

const (
	paramID = "id"

	msgInvalidPayload = "Invalid request payload"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// intURLParam reads a path parameter as an integer the lenient way clients of
// this API expect: leading whitespace and an optional sign are skipped, a 0x
// prefix selects hex, and parsing stops at the first non-digit ("5abc" is 5,
// "4.5" is 4). ok is false when no digit is found, in which case the value can
// never match a stored ID.
func intURLParam(r *http.Request, name string) (int, bool) {
	return parseLeadingInt(chi.URLParam(r, name))
}

func parseLeadingInt(raw string) (int, bool) {
	s := strings.TrimLeft(raw, " \t\n\r\v\f")

	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}

	base := 10
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return 0, false
	}

	id, err := strconv.ParseInt(sign+s[:end], base, strconv.IntSize)
	if err != nil {
		return 0, false
	}
	return int(id), true
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && (c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'):
		return true
	}
	return false
}

// decodePayload reads a JSON body into dst. An empty body leaves dst at its zero value.
// Decoder details stay in the logged cause; clients only see msgInvalidPayload.
func decodePayload(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return webutil.ErrBadRequestWrap(msgInvalidPayload, err)
	}
	return nil
}
