package services

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

type OCRService struct {
	client *rekognition.Client
}

func NewOCRService() (*OCRService, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &OCRService{client: rekognition.NewFromConfig(cfg)}, nil
}

// OCRResult carries the extracted label text plus an overall confidence
// (0-100). Confidence is caller-facing metadata; the scoring pipeline
// never alters its behavior based on it.
type OCRResult struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// ExtractText runs text detection over a base64-encoded label photo and
// joins the detected lines top to bottom.
func (o *OCRService) ExtractText(base64Img string) (*OCRResult, error) {
	idx := strings.Index(base64Img, ",")
	if idx < 0 || !strings.HasPrefix(base64Img, "data:image") {
		return nil, errors.New("invalid data URI")
	}
	data, err := base64.StdEncoding.DecodeString(base64Img[idx+1:])
	if err != nil {
		return nil, err
	}

	out, err := o.client.DetectText(context.TODO(), &rekognition.DetectTextInput{
		Image: &types.Image{Bytes: data},
	})
	if err != nil {
		return nil, err
	}

	var lines []string
	var confSum float64
	for _, det := range out.TextDetections {
		if det.Type != types.TextTypesLine || det.DetectedText == nil {
			continue
		}
		lines = append(lines, *det.DetectedText)
		if det.Confidence != nil {
			confSum += float64(*det.Confidence)
		}
	}
	if len(lines) == 0 {
		return &OCRResult{Text: "", Confidence: 0}, nil
	}

	return &OCRResult{
		Text:       strings.Join(lines, "\n"),
		Confidence: confSum / float64(len(lines)),
	}, nil
}
