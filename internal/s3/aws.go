package s3

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config controls the AWS-backed storage client.
type Config struct {
	Endpoint     string // empty means the regional AWS endpoint
	Region       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
	Expiry       time.Duration
}

const defaultExpiry = 15 * time.Minute

// AWSClient implements Client on aws-sdk-go-v2: the SDK presign client for
// read redirects, a raw SigV4 presigner for arbitrary-method signed
// requests with header overrides.
type AWSClient struct {
	presigner *awss3.PresignClient
	signer    *v4.Signer
	creds     aws.CredentialsProvider
	endpoint  *url.URL
	region    string
	pathStyle bool
	expiry    time.Duration
}

func NewAWSClient(ctx context.Context, cfg Config) (*AWSClient, error) {
	if cfg.Region == "" {
		return nil, fmt.Errorf("s3 client: region is required")
	}
	if cfg.Expiry <= 0 {
		cfg.Expiry = defaultExpiry
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3 client: load aws config: %w", err)
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://s3.%s.amazonaws.com", cfg.Region)
	}
	base, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("s3 client: endpoint %q: %w", cfg.Endpoint, err)
	}

	api := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &AWSClient{
		presigner: awss3.NewPresignClient(api),
		signer:    v4.NewSigner(),
		creds:     awsCfg.Credentials,
		endpoint:  base,
		region:    cfg.Region,
		pathStyle: cfg.UsePathStyle,
		expiry:    cfg.Expiry,
	}, nil
}

// PresignedURL produces a read URL for the redirect flows. Only HEAD and
// GET are read methods; anything else is a build error.
func (c *AWSClient) PresignedURL(ctx context.Context, method, bucket, key string) (string, error) {
	switch method {
	case http.MethodGet:
		req, err := c.presigner.PresignGetObject(ctx, &awss3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		}, awss3.WithPresignExpires(c.expiry))
		if err != nil {
			return "", &BuildError{Method: method, Err: err}
		}
		return req.URL, nil
	case http.MethodHead:
		req, err := c.presigner.PresignHeadObject(ctx, &awss3.HeadObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		}, awss3.WithPresignExpires(c.expiry))
		if err != nil {
			return "", &BuildError{Method: method, Err: err}
		}
		return req.URL, nil
	default:
		return "", &BuildError{Method: method, Err: fmt.Errorf("not a read method")}
	}
}

// Sign presigns an arbitrary-method request against an object, carrying
// the caller's header overrides into the signature.
func (c *AWSClient) Sign(ctx context.Context, spec SignedRequestSpec) (string, error) {
	if err := validateSpec(spec); err != nil {
		return "", &BuildError{Method: spec.Method, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, spec.Method, c.objectURL(spec.Bucket, spec.Key), nil)
	if err != nil {
		return "", &BuildError{Method: spec.Method, Err: err}
	}
	for name, value := range spec.Headers {
		req.Header.Set(name, value)
	}

	q := req.URL.Query()
	q.Set("X-Amz-Expires", strconv.FormatInt(int64(c.expiry/time.Second), 10))
	req.URL.RawQuery = q.Encode()

	creds, err := c.creds.Retrieve(ctx)
	if err != nil {
		return "", &BuildError{Method: spec.Method, Err: fmt.Errorf("retrieve credentials: %w", err)}
	}

	uri, _, err := c.signer.PresignHTTP(ctx, creds, req, "UNSIGNED-PAYLOAD", "s3", c.region, time.Now().UTC())
	if err != nil {
		return "", &BuildError{Method: spec.Method, Err: err}
	}
	return uri, nil
}

func validateSpec(spec SignedRequestSpec) error {
	switch spec.Method {
	case http.MethodHead, http.MethodGet, http.MethodPut, http.MethodDelete:
	default:
		return fmt.Errorf("unsupported method %q", spec.Method)
	}
	if spec.Bucket == "" || spec.Key == "" {
		return fmt.Errorf("bucket and object are required")
	}
	for name := range spec.Headers {
		if strings.TrimSpace(name) == "" || strings.ContainsAny(name, " \t\r\n") {
			return fmt.Errorf("invalid header name %q", name)
		}
	}
	return nil
}

func (c *AWSClient) objectURL(bucket, key string) string {
	if c.pathStyle {
		u := *c.endpoint
		return u.JoinPath(bucket, key).String()
	}
	u := *c.endpoint
	u.Host = bucket + "." + u.Host
	return u.JoinPath(key).String()
}
