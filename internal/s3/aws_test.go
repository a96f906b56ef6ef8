package s3

import (
	"net/url"
	"testing"
	"time"
)

func TestValidateSpec_Methods(t *testing.T) {
	base := SignedRequestSpec{Bucket: "b", Key: "o"}

	for _, m := range []string{"HEAD", "GET", "PUT", "DELETE"} {
		spec := base
		spec.Method = m
		if err := validateSpec(spec); err != nil {
			t.Fatalf("validateSpec(%s): %v", m, err)
		}
	}
	for _, m := range []string{"PATCH", "POST", "", "get"} {
		spec := base
		spec.Method = m
		if err := validateSpec(spec); err == nil {
			t.Fatalf("validateSpec(%q): expected error", m)
		}
	}
}

func TestValidateSpec_RequiredFields(t *testing.T) {
	if err := validateSpec(SignedRequestSpec{Method: "GET", Key: "o"}); err == nil {
		t.Fatal("expected error for empty bucket")
	}
	if err := validateSpec(SignedRequestSpec{Method: "GET", Bucket: "b"}); err == nil {
		t.Fatal("expected error for empty object")
	}
}

func TestValidateSpec_HeaderNames(t *testing.T) {
	spec := SignedRequestSpec{Method: "PUT", Bucket: "b", Key: "o",
		Headers: map[string]string{"Content Type": "x"}}
	if err := validateSpec(spec); err == nil {
		t.Fatal("expected error for header name with a space")
	}
}

func testAWSClient(t *testing.T, endpoint string, pathStyle bool) *AWSClient {
	t.Helper()
	u, err := url.Parse(endpoint)
	if err != nil {
		t.Fatalf("parse endpoint: %v", err)
	}
	return &AWSClient{
		endpoint:  u,
		region:    "us-east-1",
		pathStyle: pathStyle,
		expiry:    time.Minute,
	}
}

func TestObjectURL_PathStyle(t *testing.T) {
	c := testAWSClient(t, "https://storage.internal:9000", true)
	got := c.objectURL("media", "thumbs.cat.png")
	if got != "https://storage.internal:9000/media/thumbs.cat.png" {
		t.Fatalf("objectURL = %q", got)
	}
}

func TestObjectURL_VirtualHost(t *testing.T) {
	c := testAWSClient(t, "https://s3.us-east-1.amazonaws.com", false)
	got := c.objectURL("media", "cat.png")
	if got != "https://media.s3.us-east-1.amazonaws.com/cat.png" {
		t.Fatalf("objectURL = %q", got)
	}
}
