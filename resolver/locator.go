package resolver

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Locator identifies a document: an absolute filesystem path or an http(s)
// URL, in canonical form. Two spellings of the same document (./a.yaml and
// a.yaml, decomposed and composed Unicode names, URLs with dot segments)
// produce the same Locator.
type Locator string

// String returns the locator as a plain string.
func (l Locator) String() string { return string(l) }

// IsURL reports whether l is an http or https URL.
func (l Locator) IsURL() bool {
	s := string(l)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// dataExtensions are always decoded as JSON or YAML.
var dataExtensions = []string{".json", ".yaml", ".yml"}

// HasDataExtension reports whether l names a JSON or YAML document by its
// extension. A locator without an extension counts as data.
func (l Locator) HasDataExtension() bool {
	var ext string
	if l.IsURL() {
		u, err := url.Parse(string(l))
		if err != nil {
			return true
		}
		ext = path.Ext(u.Path)
	} else {
		ext = filepath.Ext(string(l))
	}
	return ext == "" || slices.Contains(dataExtensions, strings.ToLower(ext))
}

var (
	// ErrUnsupportedScheme is returned for locators that are neither file
	// paths nor http(s) URLs.
	ErrUnsupportedScheme = errors.New("unsupported locator scheme")

	// ErrRemoteToLocal is returned when a document fetched over HTTP refers
	// to a local file.
	ErrRemoteToLocal = errors.New("remote document cannot reference a local file")
)

// ParseLocator canonicalizes a user-supplied path or URL. Relative paths are
// resolved against the working directory. A file:// URL is treated as the
// path it names.
func ParseLocator(raw string) (Locator, error) {
	if raw == "" {
		return "", errors.New("empty locator")
	}
	u, isURL, err := parseAbsoluteURL(raw)
	if err != nil {
		return "", err
	}
	if isURL {
		return urlLocator(u)
	}
	return fileLocator(raw)
}

// ResolveRef resolves the path part of a $ref against the document it
// appears in. It returns the canonical target and the fragment (without '#').
// A ref with an empty path part targets base itself.
func ResolveRef(base Locator, ref string) (target Locator, fragment string, err error) {
	pathPart, fragment, _ := strings.Cut(ref, "#")
	if pathPart == "" {
		return base, fragment, nil
	}

	u, isURL, err := parseAbsoluteURL(pathPart)
	if err != nil {
		return "", "", err
	}
	if isURL {
		target, err = urlLocator(u)
		return target, fragment, err
	}
	if base.IsURL() && isLocalPath(pathPart) {
		return "", "", fmt.Errorf("%w: %q", ErrRemoteToLocal, pathPart)
	}
	if strings.HasPrefix(strings.ToLower(pathPart), "file://") {
		target, err = fileLocator(pathPart)
		return target, fragment, err
	}

	if base.IsURL() {
		baseURL, err := url.Parse(string(base))
		if err != nil {
			return "", "", fmt.Errorf("invalid base URL %q: %w", base, err)
		}
		relURL, err := url.Parse(pathPart)
		if err != nil {
			return "", "", fmt.Errorf("invalid reference %q: %w", ref, err)
		}
		target, err = urlLocator(baseURL.ResolveReference(relURL))
		return target, fragment, err
	}

	// refs are URI references, so file names may be percent-encoded
	p := pathPart
	if decoded, err := url.PathUnescape(p); err == nil {
		p = decoded
	}
	p = filepath.FromSlash(p)
	if !filepath.IsAbs(p) {
		p = filepath.Join(filepath.Dir(string(base)), p)
	}
	target, err = fileLocator(p)
	return target, fragment, err
}

// parseAbsoluteURL reports whether raw is an absolute URL with a scheme this
// package can fetch. file:// URLs and Windows drive letters are reported as
// paths; any other scheme is an error.
func parseAbsoluteURL(raw string) (*url.URL, bool, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		// not a URL; treat as a path
		return nil, false, nil
	}
	switch scheme := strings.ToLower(u.Scheme); {
	case scheme == "http" || scheme == "https":
		if u.Host == "" {
			return nil, false, fmt.Errorf("URL %q has no host", raw)
		}
		return u, true, nil
	case len(scheme) == 1:
		// C:\specs\api.yaml
		return nil, false, nil
	case scheme == "file":
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("%w %q in %q", ErrUnsupportedScheme, u.Scheme, raw)
	}
}

// isLocalPath reports whether an absolute ref names a local file through a
// file:// URL or a Windows drive letter.
func isLocalPath(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "file" || len(scheme) == 1
}

func urlLocator(u *url.URL) (Locator, error) {
	// resolving against an empty base removes dot segments
	c := (&url.URL{}).ResolveReference(u)
	c.Scheme = strings.ToLower(c.Scheme)
	c.Host = strings.ToLower(c.Host)
	c.Fragment = ""
	c.RawFragment = ""
	if c.Path == "" {
		c.Path = "/"
		c.RawPath = ""
	}
	return Locator(c.String()), nil
}

func fileLocator(p string) (Locator, error) {
	if strings.HasPrefix(strings.ToLower(p), "file://") {
		u, err := url.Parse(p)
		if err != nil {
			return "", fmt.Errorf("invalid file URL %q: %w", p, err)
		}
		p = filepath.FromSlash(u.Path)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", p, err)
	}
	return Locator(norm.NFC.String(abs)), nil
}
