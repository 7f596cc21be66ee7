package store

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"tour-planner/models"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

var ErrCityNotFound = errors.New("city_not_found")

// Catalog 는 샌드박스가 제공하는 읽기 전용 기준 데이터(도시, 질문, 가이드)다.
type Catalog struct {
	Cities    []models.City     `yaml:"cities"`
	Questions []models.Question `yaml:"questions"`
	Guides    []models.Guide    `yaml:"guides"`
}

// LoadCatalog 는 path 의 YAML 픽스처를 읽는다. path 가 비어 있으면 내장 픽스처를 쓴다.
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultFixtures
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read fixtures %s: %w", path, err)
		}
		data = b
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	cityIDs := map[string]bool{}
	for _, city := range c.Cities {
		if city.ID == "" || city.Name == "" {
			return fmt.Errorf("fixtures: city needs id and name: %+v", city)
		}
		if cityIDs[city.ID] {
			return fmt.Errorf("fixtures: duplicate city id %q", city.ID)
		}
		cityIDs[city.ID] = true
	}

	questionIDs := map[string]bool{}
	for _, q := range c.Questions {
		if q.ID == "" {
			return fmt.Errorf("fixtures: question without id: %q", q.Question)
		}
		if questionIDs[q.ID] {
			return fmt.Errorf("fixtures: duplicate question id %q", q.ID)
		}
		questionIDs[q.ID] = true
		if q.City != nil && q.City.ID != "" && !cityIDs[q.City.ID] {
			return fmt.Errorf("fixtures: question %q refers to unknown city %q", q.ID, q.City.ID)
		}
		switch q.Type {
		case models.QuestionTypeText, models.QuestionTypeNumber, models.QuestionTypeDate,
			models.QuestionTypeOptions, models.QuestionTypeCommon, models.QuestionTypeGuidePrompt:
		default:
			return fmt.Errorf("fixtures: question %q has unknown type %q", q.ID, q.Type)
		}
	}
	return nil
}

// ListCities 는 order 오름차순으로 도시 목록을 돌려준다.
func (c *Catalog) ListCities() []models.City {
	out := append([]models.City(nil), c.Cities...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

func (c *Catalog) CityByName(name string) (models.City, bool) {
	return models.FindCity(c.Cities, name)
}

// QuestionsForCity 는 도시 전용 질문과 공통 질문을 모두 돌려준다.
// 실제 백엔드처럼 inactive 질문도 포함하며 정렬하지 않는다. 거르는 것은 클라이언트 몫이다.
func (c *Catalog) QuestionsForCity(cityID string) ([]models.Question, error) {
	found := false
	for _, city := range c.Cities {
		if city.ID == cityID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrCityNotFound
	}

	out := make([]models.Question, 0, len(c.Questions))
	for _, q := range c.Questions {
		if q.AppliesTo(cityID) {
			out = append(out, q)
		}
	}
	return out, nil
}

// GuidesForCity 는 도시 이름(대소문자 무시)으로 가이드를 찾는다. 비활성 가이드도 포함한다.
func (c *Catalog) GuidesForCity(name string) []models.Guide {
	name = strings.TrimSpace(name)
	out := make([]models.Guide, 0)
	for _, g := range c.Guides {
		for _, city := range g.Cities {
			if strings.EqualFold(city, name) {
				out = append(out, g)
				break
			}
		}
	}
	return out
}
