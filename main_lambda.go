//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

type optimizeResult struct {
	Name       string     `json:"name,omitempty"`
	Candidates int        `json:"candidates"`
	TimeMs     int64      `json:"timeMs"`
	Best       BranchJSON `json:"best"`
	Detail     string     `json:"detail"`
}

// handler takes a pool document as the request body. The function deadline
// bounds the lazy search through ctx.
func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}

	pool, err := ParsePool([]byte(body))
	if err != nil {
		return errResp(400, err.Error())
	}

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		return errResp(500, err.Error())
	}
	res, err := NewOptimizer(pool.Items, cfg).Optimize(ctx)
	if err != nil {
		var incompatible *IncompatibleItemsError
		switch {
		case errors.As(err, &incompatible):
			return errResp(422, err.Error())
		case errors.Is(err, context.DeadlineExceeded):
			return errResp(504, "search did not finish before the deadline")
		}
		return errResp(500, err.Error())
	}

	resp := optimizeResult{
		Name:       pool.Name,
		Candidates: res.Candidates,
		TimeMs:     res.Elapsed.Milliseconds(),
		Best:       ToBranchJSON(res.Best),
		Detail:     FormatBranch(res.Best),
	}
	respJSON, _ := json.Marshal(resp)
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	lambda.Start(handler)
}
