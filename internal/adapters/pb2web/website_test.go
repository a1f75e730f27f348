package pb2web

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/app"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/domain"
)

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestPasswordDigest(t *testing.T) {
	digest := "0123456789abcdef0123456789abcdef"
	if got := PasswordDigest(digest); got != digest {
		t.Fatalf("digest should be sent unchanged, got %q", got)
	}
	if got := PasswordDigest("hunter2"); got != md5Hex("hunter2") {
		t.Fatalf("expected md5(hunter2), got %q", got)
	}
	// Majuscules: pas un digest au sens du site, donc re-hashé.
	upper := "0123456789ABCDEF0123456789ABCDEF"
	if got := PasswordDigest(upper); got != md5Hex(upper) {
		t.Fatalf("uppercase hex should be hashed, got %q", got)
	}
	if got := PasswordDigest(""); got != md5Hex("") {
		t.Fatalf("empty password should be hashed, got %q", got)
	}
}

func TestLoginWebsite_SendsDigestAndBrowserHeaders(t *testing.T) {
	var gotForm map[string]string
	var gotUA, gotEncoding, gotOrigin string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		gotForm = map[string]string{
			"login":    r.PostForm.Get("login"),
			"password": r.PostForm.Get("password"),
			"Submit":   r.PostForm.Get("Submit"),
		}
		gotUA = r.Header.Get("User-Agent")
		gotEncoding = r.Header.Get("Accept-Encoding")
		gotOrigin = r.Header.Get("Origin")
		_, _ = w.Write([]byte(`<html><body><table><tr><td id="wb_box">Welcome back, alice! Have fun.</td></tr></table></body></html>`))
	}))
	defer ts.Close()

	c := NewClient(0).WithWebsiteURL(ts.URL + "/")
	msg, err := c.LoginWebsite(context.Background(), domain.Credentials{Username: "alice", Password: "hunter2"})
	if err != nil {
		t.Fatalf("LoginWebsite: %v", err)
	}
	if msg != "Welcome back, alice!" {
		t.Fatalf("unexpected message %q", msg)
	}
	if gotForm["login"] != "alice" || gotForm["Submit"] != "Log-in" {
		t.Fatalf("unexpected form %+v", gotForm)
	}
	if gotForm["password"] != md5Hex("hunter2") {
		t.Fatalf("expected md5 digest, got %q", gotForm["password"])
	}
	if !strings.Contains(gotUA, "Firefox") {
		t.Fatalf("expected browser user agent, got %q", gotUA)
	}
	if gotEncoding != "gzip" {
		t.Fatalf("expected gzip accept-encoding, got %q", gotEncoding)
	}
	if gotOrigin != ts.URL {
		t.Fatalf("expected origin %q, got %q", ts.URL, gotOrigin)
	}
}

func TestLoginWebsite_DecodesGzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte(`<td id="wb_box">Welcome back, <b>bob</b>! You have 3 messages</td>`))
	_ = gz.Close()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write(buf.Bytes())
	}))
	defer ts.Close()

	msg, err := NewClient(0).WithWebsiteURL(ts.URL).LoginWebsite(context.Background(), domain.Credentials{Username: "bob", Password: "x"})
	if err != nil {
		t.Fatalf("LoginWebsite: %v", err)
	}
	if msg != "Welcome back,  bob !" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestLoginWebsite_NonOKIsTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, err := NewClient(0).WithWebsiteURL(ts.URL).LoginWebsite(context.Background(), domain.Credentials{Username: "a", Password: "b"})
	var coded *app.CodedError
	if !errors.As(err, &coded) || coded.Code != app.CodeHTTPStatus {
		t.Fatalf("expected http_status coded error, got %T (%v)", err, err)
	}
	if !app.IsTransport(err) {
		t.Fatalf("expected transport error")
	}
}

func TestLoginWebsite_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := NewClient(0).WithWebsiteURL(url).LoginWebsite(context.Background(), domain.Credentials{Username: "a", Password: "b"})
	if app.ErrorCode(err) != app.CodeNetwork {
		t.Fatalf("expected network_error, got %v", err)
	}
}

func TestClassifyWebsiteResponse(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
		kind string
	}{
		{
			name: "welcome box",
			body: `<td id="wb_box">  Welcome back, alice! Last login yesterday!</td>`,
			want: "Welcome back, alice!",
			kind: "welcome",
		},
		{
			name: "welcome box without bang falls through to alert",
			body: `<td id="wb_box">Hello</td><script>alert('Wrong password')</script>`,
			want: "Wrong password",
			kind: "alert",
		},
		{
			name: "single quoted alert with escapes",
			body: `<script>alert('Wrong login or password.\n\nPlease try again.\\n')</script>`,
			want: "Wrong login or password.\r\nPlease try again.\r\n",
			kind: "alert",
		},
		{
			name: "double quoted alert strips backslashes",
			body: `<script>alert("Can\'t log in")</script>`,
			want: "Can't log in",
			kind: "alert",
		},
		{
			name: "nothing known",
			body: `<html><body>maintenance</body></html>`,
			want: domain.NoConnectionMessage,
			kind: "fallthrough",
		},
		{
			name: "empty body",
			body: ``,
			want: domain.NoConnectionMessage,
			kind: "fallthrough",
		},
	}
	for _, tc := range cases {
		got, kind := ClassifyWebsiteResponse(tc.body)
		if got != tc.want || kind != tc.kind {
			t.Fatalf("%s: want %q (%s), got %q (%s)", tc.name, tc.want, tc.kind, got, kind)
		}
	}
}

func TestClassifyWebsiteResponse_WelcomeImpliesSuccess(t *testing.T) {
	msg, _ := ClassifyWebsiteResponse(`<td id="wb_box">Welcome back, zed!</td>`)
	if !domain.NewLoginOutcome(msg, domain.LoginWebsitePassword).Succeeded {
		t.Fatalf("welcome box must classify as success, got %q", msg)
	}
	msg, _ = ClassifyWebsiteResponse(`<script>alert('Welcome')</script>`)
	if domain.NewLoginOutcome(msg, domain.LoginWebsitePassword).Succeeded {
		t.Fatalf("alert must not classify as success, got %q", msg)
	}
}
