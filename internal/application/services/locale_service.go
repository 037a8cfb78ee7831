package services

import (
	"net"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"mannequin/internal/domain/valueobjects"
)

// CountryLookup resolves a client IP to an ISO country code, or "".
type CountryLookup func(ip net.IP) string

// persianCountries are served Persian when nothing else says otherwise.
var persianCountries = map[string]bool{
	"IR": true,
	"AF": true,
	"TJ": true,
}

var supportedTags = []language.Tag{language.English, language.Persian}

// LocaleService picks the language of a new session. After that only the
// user's toggle changes it.
type LocaleService struct {
	matcher  language.Matcher
	country  CountryLookup
	fallback valueobjects.Language
}

func NewLocaleService(fallback valueobjects.Language, country CountryLookup) *LocaleService {
	if fallback == "" {
		fallback = valueobjects.Persian
	}
	return &LocaleService{
		matcher:  language.NewMatcher(supportedTags),
		country:  country,
		fallback: fallback,
	}
}

// Detect checks X-Locale, then Accept-Language, then the client country.
func (s *LocaleService) Detect(r *http.Request) valueobjects.Language {
	if lang, err := valueobjects.ParseLanguage(r.Header.Get("X-Locale")); err == nil {
		return lang
	}

	if lang, ok := s.fromAcceptLanguage(r.Header.Get("Accept-Language")); ok {
		return lang
	}

	if s.country != nil {
		if ip := ClientIP(r); ip != nil && persianCountries[strings.ToUpper(s.country(ip))] {
			return valueobjects.Persian
		}
	}

	return s.fallback
}

func (s *LocaleService) fromAcceptLanguage(header string) (valueobjects.Language, bool) {
	if header == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", false
	}

	_, idx, confidence := s.matcher.Match(tags...)
	if confidence == language.No {
		return "", false
	}
	if idx == 1 {
		return valueobjects.Persian, true
	}
	return valueobjects.English, true
}

// ClientIP prefers the first X-Forwarded-For hop, then RemoteAddr.
func ClientIP(r *http.Request) net.IP {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return net.ParseIP(host)
}
