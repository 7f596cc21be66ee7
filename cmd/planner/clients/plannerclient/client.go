package plannerclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	"tour-planner/cmd/planner/apierr"
	"tour-planner/cmd/planner/auth"
	"tour-planner/cmd/planner/httpclient"
	"tour-planner/dto"
	"tour-planner/models"
)

// Client는 마켓플레이스 백엔드의 여행 플래너 관련 엔드포인트를 호출하는 얇은 클라이언트다.
//
// - 인증 헤더는 httpclient 의 bearer RoundTripper 가 붙인다.
// - 실패는 모두 *apierr.Error 로 분류해 돌려준다.
type Client struct {
	base   *httpclient.BaseClient
	tokens auth.TokenSource
}

const maxBodySize = 5 * 1024 * 1024

func New(baseURL string, tokens auth.TokenSource, cfg httpclient.Config) *Client {
	cfg.Tokens = tokens
	return &Client{
		base:   httpclient.NewBaseClient(baseURL, cfg),
		tokens: tokens,
	}
}

// ListCities는 GET /api/predefine/cities 를 호출한다.
func (c *Client) ListCities(ctx context.Context) ([]models.City, error) {
	var out dto.Envelope[[]models.City]
	if err := c.do(ctx, http.MethodGet, "/api/predefine/cities", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return out.Data, nil
}

// ListQuestions는 GET /api/predefine/questions/city/{cityId} 를 호출하고
// active 질문만 order 오름차순으로 돌려준다.
func (c *Client) ListQuestions(ctx context.Context, cityID string) ([]models.Question, error) {
	relPath := path.Join("/api/predefine/questions/city", url.PathEscape(cityID))

	var out dto.Envelope[[]models.Question]
	if err := c.do(ctx, http.MethodGet, relPath, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return models.ActiveQuestions(out.Data), nil
}

// GenerateItinerary는 POST /api/travelPlan 를 호출한다.
func (c *Client) GenerateItinerary(ctx context.Context, req dto.TravelPlanRequest) (dto.TravelPlanData, error) {
	var out dto.Envelope[dto.TravelPlanData]
	if err := c.do(ctx, http.MethodPost, "/api/travelPlan", nil, req, &out); err != nil {
		return dto.TravelPlanData{}, fmt.Errorf("generate itinerary: %w", err)
	}
	return out.Data, nil
}

// RequestCredits는 현재 토큰의 사용자 ID 로 POST /api/credit/request 를 호출한다.
func (c *Client) RequestCredits(ctx context.Context) error {
	if c.tokens == nil {
		return fmt.Errorf("request credits: %w", apierr.MissingToken())
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrNoToken) {
			return fmt.Errorf("request credits: %w", apierr.MissingToken())
		}
		return fmt.Errorf("request credits: %w", err)
	}
	userID, err := auth.UserIDFromToken(token)
	if err != nil {
		return fmt.Errorf("request credits: %w", &apierr.Error{Kind: apierr.KindUnauthorized, Cause: err})
	}

	var out dto.StatusResponse
	if err := c.do(ctx, http.MethodPost, "/api/credit/request", nil, dto.CreditRequest{UserID: userID}, &out); err != nil {
		return fmt.Errorf("request credits: %w", err)
	}
	if !out.Success {
		return fmt.Errorf("request credits: %w", apierr.Unsuccessful(http.StatusOK, out.Message))
	}
	return nil
}

// GuidesByCity는 GET /api/search/guides/city?city=<name> 를 호출하고
// 활성 가이드만 이름순으로 돌려준다.
func (c *Client) GuidesByCity(ctx context.Context, city string) ([]models.Guide, error) {
	var out dto.Envelope[[]models.Guide]
	if err := c.do(ctx, http.MethodGet, "/api/search/guides/city", url.Values{"city": {city}}, nil, &out); err != nil {
		return nil, fmt.Errorf("guides by city: %w", err)
	}
	return FilterActiveGuides(out.Data), nil
}

// FilterActiveGuides 는 active 가이드만 남기고 대소문자 무시 이름 오름차순으로 정렬한다.
func FilterActiveGuides(guides []models.Guide) []models.Guide {
	return models.ActiveGuidesByName(guides)
}

// envelope 는 success 필드 검사를 위해 응답 타입이 구현하는 최소 인터페이스다.
type envelope interface {
	Failed() bool
}

func (c *Client) do(ctx context.Context, method, relPath string, query url.Values, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	req, err := c.base.NewRequest(ctx, method, relPath, query, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.base.Do(req)
	if err != nil {
		var apiErr *apierr.Error
		if errors.As(err, &apiErr) {
			return apiErr
		}
		return apierr.Transport(err)
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if readErr != nil {
		return apierr.Transport(fmt.Errorf("read response: %w", readErr))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apierr.Classify(resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return &apierr.Error{Kind: apierr.KindUnknown, StatusCode: resp.StatusCode, Cause: fmt.Errorf("decode response: %w", err)}
	}
	if env, ok := out.(envelope); ok && env.Failed() {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(respBody, &msg)
		return apierr.Unsuccessful(resp.StatusCode, msg.Message)
	}
	return nil
}
