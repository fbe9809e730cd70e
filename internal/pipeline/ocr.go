package pipeline

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	gobreaker "github.com/sony/gobreaker/v2"
	"google.golang.org/api/option"

	"github.com/tair/smartskin/pkg/logger"
)

var (
	// ErrOCRUnavailable is returned by AnalyzeImage when no OCR is configured
	// or the OCR circuit is open.
	ErrOCRUnavailable = errors.New("image text extraction is unavailable")
	// ErrInvalidImage means the payload could not be decoded.
	ErrInvalidImage = errors.New("invalid image payload")
)

// OCR extracts text from an image. An image without text yields "".
type OCR interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// VisionOCR calls Google Cloud Vision text detection.
type VisionOCR struct {
	client *vision.ImageAnnotatorClient
}

// NewVisionOCR creates a Vision client. An empty credentialsFile uses
// application default credentials.
func NewVisionOCR(ctx context.Context, credentialsFile string) (*VisionOCR, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}
	return &VisionOCR{client: client}, nil
}

func (v *VisionOCR) ExtractText(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := v.client.BatchAnnotateImages(ctx, &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image:    &visionpb.Image{Content: image},
			Features: []*visionpb.Feature{{Type: visionpb.Feature_TEXT_DETECTION}},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("vision BatchAnnotateImages: %w", err)
	}
	if resp == nil || len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return "", nil
	}

	r0 := resp.Responses[0]
	if r0.Error != nil && r0.Error.Message != "" {
		return "", fmt.Errorf("vision annotate error: %s", r0.Error.Message)
	}
	if fta := r0.FullTextAnnotation; fta != nil && fta.Text != "" {
		return fta.Text, nil
	}
	if len(r0.TextAnnotations) > 0 {
		return r0.TextAnnotations[0].Description, nil
	}
	return "", nil
}

func (v *VisionOCR) Close() error {
	return v.client.Close()
}

// BreakerOCR stops calling a failing OCR backend for a while.
type BreakerOCR struct {
	next OCR
	cb   *gobreaker.CircuitBreaker[string]
}

// NewBreakerOCR trips after five consecutive failures and probes again
// after timeout.
func NewBreakerOCR(next OCR, timeout time.Duration) *BreakerOCR {
	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "ocr",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("OCR circuit breaker state change")
		},
	})
	return &BreakerOCR{next: next, cb: cb}
}

func (b *BreakerOCR) ExtractText(ctx context.Context, image []byte) (string, error) {
	text, err := b.cb.Execute(func() (string, error) {
		return b.next.ExtractText(ctx, image)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %v", ErrOCRUnavailable, err)
	}
	return text, err
}

// DecodeImage accepts raw base64 or a data URL.
func DecodeImage(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, "data:") {
		i := strings.Index(payload, ",")
		if i < 0 {
			return nil, ErrInvalidImage
		}
		payload = payload[i+1:]
	}
	if payload == "" {
		return nil, ErrInvalidImage
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return data, nil
}

// IngredientText collapses whitespace and, when the text mentions an
// ingredients heading, keeps only what follows from it.
func IngredientText(raw string) string {
	text := strings.Join(strings.Fields(raw), " ")
	const heading = "ingredients"
	for i := 0; i+len(heading) <= len(text); i++ {
		if strings.EqualFold(text[i:i+len(heading)], heading) {
			return text[i:]
		}
	}
	return text
}
