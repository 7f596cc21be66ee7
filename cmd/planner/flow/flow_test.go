package flow

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tour-planner/cmd/planner/apierr"
	"tour-planner/dto"
	"tour-planner/models"
)

type fakeAPI struct {
	mu sync.Mutex

	cities       []models.City
	citiesErr    error
	questions    map[string][]models.Question
	questionsErr error
	plan         dto.TravelPlanData
	generateErr  error
	generateFn   func(ctx context.Context, req dto.TravelPlanRequest) (dto.TravelPlanData, error)
	creditErr    error
	guides       []models.Guide
	guidesErr    error

	cityCalls     int
	questionCalls []string
	requests      []dto.TravelPlanRequest
	creditCalls   int
	guideCalls    []string
}

func (a *fakeAPI) ListCities(ctx context.Context) ([]models.City, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cityCalls++
	if a.citiesErr != nil {
		return nil, a.citiesErr
	}
	return append([]models.City(nil), a.cities...), nil
}

func (a *fakeAPI) ListQuestions(ctx context.Context, cityID string) ([]models.Question, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.questionCalls = append(a.questionCalls, cityID)
	if a.questionsErr != nil {
		return nil, a.questionsErr
	}
	return append([]models.Question(nil), a.questions[cityID]...), nil
}

func (a *fakeAPI) GenerateItinerary(ctx context.Context, req dto.TravelPlanRequest) (dto.TravelPlanData, error) {
	a.mu.Lock()
	a.requests = append(a.requests, req)
	fn, plan, err := a.generateFn, a.plan, a.generateErr
	a.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	return plan, err
}

func (a *fakeAPI) RequestCredits(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.creditCalls++
	return a.creditErr
}

func (a *fakeAPI) GuidesByCity(ctx context.Context, city string) ([]models.Guide, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.guideCalls = append(a.guideCalls, city)
	return a.guides, a.guidesErr
}

func (a *fakeAPI) generateRequests() []dto.TravelPlanRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]dto.TravelPlanRequest(nil), a.requests...)
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		cities: []models.City{
			{ID: "c-rome", Name: "Rome", Order: 2},
			{ID: "c-paris", Name: "Paris", Order: 1},
		},
		questions: map[string][]models.Question{
			"c-paris": {
				{ID: "q-date", Question: "When do you arrive?", Status: models.QuestionStatusActive, Order: 2, Type: models.QuestionTypeDate},
				{ID: "q-old", Question: "Retired question", Status: models.QuestionStatusInactive, Order: 0, Type: models.QuestionTypeText},
				{ID: "q-days", Question: "How many days?", Status: models.QuestionStatusActive, Order: 1, Type: models.QuestionTypeNumber},
			},
			"c-rome": {
				{ID: "q-pace", Question: "What pace do you like?", Status: models.QuestionStatusActive, Order: 1, Type: models.QuestionTypeOptions, Options: []string{"Relaxed", "Packed"}},
				{ID: "q-food", Question: "Any food wishes?", Status: models.QuestionStatusActive, Order: 2, Type: models.QuestionTypeText},
			},
		},
		plan: dto.TravelPlanData{Itinerary: "Day 1: walk around", PlanID: "plan-1"},
	}
}

func lastMessage(t *testing.T, f *Flow) Message {
	t.Helper()
	transcript := f.Transcript()
	require.NotEmpty(t, transcript)
	return transcript[len(transcript)-1]
}

func started(t *testing.T, api API, opts ...Option) *Flow {
	t.Helper()
	f := New(api, opts...)
	t.Cleanup(f.Close)
	require.NoError(t, f.Start(context.Background()))
	return f
}

func submitAll(t *testing.T, f *Flow, inputs ...string) {
	t.Helper()
	for _, in := range inputs {
		require.NoError(t, f.Submit(context.Background(), in), "input %q", in)
	}
}

func TestStartOffersCitiesInOrder(t *testing.T) {
	f := started(t, newFakeAPI())

	assert.Equal(t, StateAwaitingCity, f.State())
	transcript := f.Transcript()
	require.Len(t, transcript, 1)
	assert.Equal(t, SenderBot, transcript[0].Sender)
	assert.Equal(t, MessageOptions, transcript[0].Type)
	assert.Equal(t, []string{"Paris", "Rome"}, transcript[0].Options)
	assert.Empty(t, f.Answers())
}

func TestStartTwice(t *testing.T) {
	f := started(t, newFakeAPI())
	assert.ErrorIs(t, f.Start(context.Background()), ErrAlreadyStarted)
}

func TestSubmitBeforeStart(t *testing.T) {
	f := New(newFakeAPI())
	defer f.Close()
	assert.ErrorIs(t, f.Submit(context.Background(), "Paris"), ErrNotStarted)
}

func TestUnknownCityReoffersSameOptions(t *testing.T) {
	f := started(t, newFakeAPI())
	offer := f.Transcript()[0]

	submitAll(t, f, "Atlantis")

	assert.Equal(t, StateAwaitingCity, f.State())
	transcript := f.Transcript()
	require.Len(t, transcript, 4)
	assert.Equal(t, Message{Sender: SenderUser, Type: MessageText, Text: "Atlantis"}, transcript[1])
	assert.True(t, transcript[2].IsError)
	assert.Equal(t, offer, transcript[3])
	assert.Empty(t, f.Answers())
}

func TestCityMatchIgnoresCase(t *testing.T) {
	api := newFakeAPI()
	f := started(t, api)

	submitAll(t, f, "  pARIS ")

	assert.Equal(t, StateAwaitingAnswer, f.State())
	assert.Equal(t, "Paris", f.City())
	assert.Equal(t, []string{"c-paris"}, api.questionCalls)
	assert.Equal(t, []Answer{{QuestionID: CitySelectionID, Value: "pARIS"}}, f.Answers())
}

func TestQuestionsAreActiveAndOrdered(t *testing.T) {
	f := started(t, newFakeAPI())
	submitAll(t, f, "Paris")

	questions := f.Questions()
	require.Len(t, questions, 2)
	for i, q := range questions {
		assert.True(t, q.IsActive())
		if i > 0 {
			assert.LessOrEqual(t, questions[i-1].Order, q.Order)
		}
	}

	first := lastMessage(t, f)
	assert.Equal(t, "How many days?", first.Text)
	assert.Equal(t, hintNumber, first.InputHint)

	submitAll(t, f, "3")
	second := lastMessage(t, f)
	assert.Equal(t, "When do you arrive?", second.Text)
	assert.Equal(t, hintDate, second.InputHint)

	for _, m := range f.Transcript() {
		assert.NotEqual(t, "Retired question", m.Text)
	}
}

func TestInvalidChoiceKeepsStep(t *testing.T) {
	f := started(t, newFakeAPI())
	submitAll(t, f, "Rome")

	question := lastMessage(t, f)
	require.Equal(t, MessageOptions, question.Type)
	require.Equal(t, 0, f.Step())
	before := len(f.Transcript())

	submitAll(t, f, "Sleepy")

	assert.Equal(t, 0, f.Step())
	assert.Equal(t, StateAwaitingAnswer, f.State())
	transcript := f.Transcript()
	require.Len(t, transcript, before+3)
	assert.Equal(t, "Sleepy", transcript[before].Text)
	assert.True(t, transcript[before+1].IsError)
	assert.Equal(t, problemOption, transcript[before+1].Text)
	assert.Equal(t, question, transcript[before+2])

	for _, a := range f.Answers() {
		assert.NotEqual(t, "q-pace", a.QuestionID)
	}

	submitAll(t, f, "relaxed")
	assert.Equal(t, 1, f.Step())
}

func TestFixedCityScenario(t *testing.T) {
	api := newFakeAPI()
	f := started(t, api, WithFixedCity("Paris"))

	assert.Equal(t, StateAwaitingAnswer, f.State())
	assert.Equal(t, []Answer{{QuestionID: CitySelectionID, Value: "Paris"}}, f.Answers())
	for _, m := range f.Transcript() {
		assert.NotEqual(t, MessageOptions, m.Type, "city prompt must be skipped")
	}

	submitAll(t, f, "abc")
	assert.Equal(t, 0, f.Step())
	assert.Equal(t, problemNumber, f.Transcript()[len(f.Transcript())-2].Text)

	submitAll(t, f, "5")
	assert.Equal(t, 1, f.Step())
	assert.Equal(t, "When do you arrive?", lastMessage(t, f).Text)

	submitAll(t, f, "2025-13-40")
	assert.Equal(t, StateOfferGuideList, f.State())

	requests := api.generateRequests()
	require.Len(t, requests, 1)
	assert.Equal(t, "Paris", requests[0].CityName)
	assert.Equal(t, []string{"5", "2025-13-40"}, requests[0].Answers)
	require.Len(t, requests[0].Questions, 2)
	assert.Equal(t, "q-days", requests[0].Questions[0].ID)
}

func TestDateRejectsWrongShape(t *testing.T) {
	f := started(t, newFakeAPI(), WithFixedCity("Paris"))
	submitAll(t, f, "4", "16/10/2026")

	assert.Equal(t, 1, f.Step())
	assert.Equal(t, problemDate, f.Transcript()[len(f.Transcript())-2].Text)
}

func TestGenerationRedirectsToFirstGap(t *testing.T) {
	api := newFakeAPI()
	f := New(api)
	defer f.Close()

	f.mu.Lock()
	f.state = StateAwaitingAnswer
	f.city = models.City{ID: "c-x", Name: "Lyon"}
	f.questions = []models.Question{
		{ID: "q1", Question: "First?", Status: models.QuestionStatusActive, Order: 1, Type: models.QuestionTypeText},
		{ID: "q2", Question: "Second?", Status: models.QuestionStatusActive, Order: 2, Type: models.QuestionTypeText},
	}
	f.answers = []Answer{{QuestionID: "q1", Value: "a"}}
	err := f.generate(context.Background())
	f.mu.Unlock()

	require.NoError(t, err)
	assert.Empty(t, api.generateRequests())
	assert.Equal(t, StateAwaitingAnswer, f.State())
	assert.Equal(t, 1, f.Step())
	assert.Equal(t, "Second?", lastMessage(t, f).Text)
}

func TestItineraryThenGuideOffer(t *testing.T) {
	f := started(t, newFakeAPI(), WithFixedCity("Paris"))
	submitAll(t, f, "2", "2026-05-01")

	transcript := f.Transcript()
	require.GreaterOrEqual(t, len(transcript), 2)
	itinerary := transcript[len(transcript)-2]
	assert.Equal(t, MessageItinerary, itinerary.Type)
	assert.Equal(t, "Day 1: walk around", itinerary.Text)
	assert.Equal(t, "plan-1", itinerary.PlanID)

	offer := transcript[len(transcript)-1]
	assert.Equal(t, []string{OptionYes, OptionNo}, offer.Options)
	assert.Contains(t, offer.Text, "Paris")
}

func TestGuideBranches(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		guides    []models.Guide
		guidesErr error
		wantCalls int
		wantType  MessageType
	}{
		{name: "yes with guides", input: "yes", guides: []models.Guide{{ID: "g1", Name: "Ana", Active: true}}, wantCalls: 1, wantType: MessageGuides},
		{name: "yes without guides", input: "YES", wantCalls: 1, wantType: MessageText},
		{name: "yes with failure", input: "Yes", guidesErr: apierr.Classify(500, nil), wantCalls: 1, wantType: MessageError},
		{name: "no", input: "no", wantCalls: 0},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			api := newFakeAPI()
			api.guides = testCase.guides
			api.guidesErr = testCase.guidesErr
			f := started(t, api, WithFixedCity("Paris"))
			submitAll(t, f, "2", "2026-05-01")
			before := len(f.Transcript())

			submitAll(t, f, testCase.input)

			assert.Len(t, api.guideCalls, testCase.wantCalls)
			assert.Equal(t, StatePostItinerary, f.State())
			transcript := f.Transcript()
			offer := transcript[len(transcript)-1]
			assert.Equal(t, []string{OptionGenerateNew, OptionModify}, offer.Options)

			if testCase.wantCalls == 0 {
				assert.Len(t, transcript, before+2)
				return
			}
			require.Len(t, transcript, before+3)
			assert.Equal(t, testCase.wantType, transcript[before+1].Type)
			if testCase.wantType == MessageGuides {
				assert.Equal(t, testCase.guides, transcript[before+1].Guides)
			}
		})
	}
}

func TestGuideOfferRejectsOtherInput(t *testing.T) {
	f := started(t, newFakeAPI(), WithFixedCity("Paris"))
	submitAll(t, f, "2", "2026-05-01", "maybe")

	assert.Equal(t, StateOfferGuideList, f.State())
	assert.Equal(t, []string{OptionYes, OptionNo}, lastMessage(t, f).Options)
}

func TestGenerateNewResubmitsSameAnswers(t *testing.T) {
	api := newFakeAPI()
	f := started(t, api, WithFixedCity("Paris"))
	submitAll(t, f, "2", "2026-05-01", "no", "generate new itinerary")

	requests := api.generateRequests()
	require.Len(t, requests, 2)
	assert.Equal(t, requests[0], requests[1])
	assert.Equal(t, StateOfferGuideList, f.State())
}

func TestModifyPreferencesRestoresInitialState(t *testing.T) {
	api := newFakeAPI()
	f := started(t, api)
	initial := f.Transcript()

	submitAll(t, f, "Paris", "2", "2026-05-01", "No", "Modify Preferences")

	assert.Equal(t, StateAwaitingCity, f.State())
	assert.Equal(t, initial, f.Transcript())
	assert.Empty(t, f.Answers())
	assert.Empty(t, f.Questions())
	assert.Equal(t, 0, f.Step())
	assert.Empty(t, f.City())
	assert.Equal(t, 1, api.cityCalls, "catalog is reused")
}

func TestModifyPreferencesWithFixedCity(t *testing.T) {
	api := newFakeAPI()
	f := started(t, api, WithFixedCity("Paris"))
	submitAll(t, f, "2", "2026-05-01", "No", "modify preferences")

	assert.Equal(t, StateAwaitingAnswer, f.State())
	assert.Equal(t, []Answer{{QuestionID: CitySelectionID, Value: "Paris"}}, f.Answers())
	assert.Equal(t, []string{"c-paris", "c-paris"}, api.questionCalls)
	assert.Equal(t, "How many days?", lastMessage(t, f).Text)
}

func TestInsufficientCreditsOffersRequest(t *testing.T) {
	testCases := []struct {
		name      string
		creditErr error
		want      CreditStatus
	}{
		{name: "granted", want: CreditSuccess},
		{name: "rejected", creditErr: apierr.Unsuccessful(200, "a request is already pending"), want: CreditError},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			api := newFakeAPI()
			api.generateErr = apierr.Classify(403, []byte(`{"success":false,"message":"Insufficient credits"}`))
			api.creditErr = testCase.creditErr

			var seen []CreditStatus
			var f *Flow
			f = New(api, WithFixedCity("Paris"), WithCallObserver(func(State) {
				seen = append(seen, f.credit)
			}))
			defer f.Close()
			require.NoError(t, f.Start(context.Background()))
			assert.Equal(t, CreditNone, f.CreditStatus())

			submitAll(t, f, "2", "2026-05-01")

			assert.Equal(t, StatePostItinerary, f.State())
			assert.Equal(t, CreditIdle, f.CreditStatus())
			transcript := f.Transcript()
			failure := transcript[len(transcript)-2]
			assert.True(t, failure.IsError)
			assert.True(t, failure.CreditAction)
			assert.Contains(t, failure.Text, "credits")

			seen = nil
			require.NoError(t, f.RequestCredits(context.Background()))
			assert.Equal(t, []CreditStatus{CreditRequesting}, seen)
			assert.Equal(t, testCase.want, f.CreditStatus())
			assert.Equal(t, 1, api.creditCalls)

			assert.ErrorIs(t, f.RequestCredits(context.Background()), ErrCreditRequestUnavailable)

			// another failure does not re-arm the one-shot request
			submitAll(t, f, "Generate New Itinerary")
			assert.Equal(t, testCase.want, f.CreditStatus())
			assert.False(t, lastMessageBefore(t, f, 1).CreditAction)
		})
	}
}

func lastMessageBefore(t *testing.T, f *Flow, n int) Message {
	t.Helper()
	transcript := f.Transcript()
	require.Greater(t, len(transcript), n)
	return transcript[len(transcript)-1-n]
}

func TestRequestCreditsUnavailableWithoutFailure(t *testing.T) {
	f := started(t, newFakeAPI())
	assert.ErrorIs(t, f.RequestCredits(context.Background()), ErrCreditRequestUnavailable)
}

func TestOtherGenerationFailuresDoNotOfferCredits(t *testing.T) {
	api := newFakeAPI()
	api.generateErr = apierr.Classify(429, nil)
	f := started(t, api, WithFixedCity("Paris"))
	submitAll(t, f, "2", "2026-05-01")

	assert.Equal(t, CreditNone, f.CreditStatus())
	failure := lastMessageBefore(t, f, 1)
	assert.True(t, failure.IsError)
	assert.False(t, failure.CreditAction)
	assert.Equal(t, apierr.UserMessageOf(api.generateErr), failure.Text)
}

func TestQuestionLoadFailureReturnsToCityChoice(t *testing.T) {
	api := newFakeAPI()
	api.questionsErr = apierr.Classify(401, nil)
	f := started(t, api)

	submitAll(t, f, "Paris")

	assert.Equal(t, StateAwaitingCity, f.State())
	assert.True(t, lastMessageBefore(t, f, 1).IsError)
	assert.Equal(t, []string{"Paris", "Rome"}, lastMessage(t, f).Options)
}

func TestCatalogFailureIsRetriedOnCityInput(t *testing.T) {
	api := newFakeAPI()
	api.citiesErr = apierr.Transport(errors.New("connection refused"))
	f := started(t, api)

	transcript := f.Transcript()
	require.Len(t, transcript, 2)
	assert.True(t, transcript[0].IsError)
	assert.Empty(t, transcript[1].Options)

	api.mu.Lock()
	api.citiesErr = nil
	api.mu.Unlock()

	submitAll(t, f, "Rome")
	assert.Equal(t, StateAwaitingAnswer, f.State())
	assert.Equal(t, 2, api.cityCalls)
}

func TestBasicItineraryDegradation(t *testing.T) {
	testCases := []struct {
		name      string
		city      string
		questions []models.Question
		wantLoads int
	}{
		{name: "fixed city outside catalog", city: "Kyoto", wantLoads: 0},
		{name: "city without questions", city: "Paris", wantLoads: 1},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			api := newFakeAPI()
			api.questions = map[string][]models.Question{"c-paris": testCase.questions}
			f := started(t, api, WithFixedCity(testCase.city))

			assert.Len(t, api.questionCalls, testCase.wantLoads)
			assert.Equal(t, StateOfferGuideList, f.State())

			requests := api.generateRequests()
			require.Len(t, requests, 1)
			assert.Equal(t, testCase.city, requests[0].CityName)
			assert.Empty(t, requests[0].Answers)

			itinerary := lastMessageBefore(t, f, 1)
			assert.Equal(t, MessageItinerary, itinerary.Type)
			assert.True(t, strings.HasPrefix(itinerary.Text, basicItineraryDisclaimer))
			assert.True(t, strings.HasSuffix(itinerary.Text, "Day 1: walk around"))
		})
	}
}

func TestEmptyInputIsRejected(t *testing.T) {
	f := started(t, newFakeAPI())
	before := f.Transcript()

	assert.ErrorIs(t, f.Submit(context.Background(), "   "), ErrEmptyInput)
	assert.Equal(t, before, f.Transcript())
}

// blockingGenerate parks GenerateItinerary until release is closed or the call is cancelled.
func blockingGenerate(api *fakeAPI, release <-chan struct{}) {
	api.generateFn = func(ctx context.Context, req dto.TravelPlanRequest) (dto.TravelPlanData, error) {
		select {
		case <-release:
			return dto.TravelPlanData{Itinerary: "late plan", PlanID: "plan-late"}, nil
		case <-ctx.Done():
			return dto.TravelPlanData{}, ctx.Err()
		}
	}
}

func generatingSignal() (Option, <-chan struct{}) {
	ch := make(chan struct{}, 1)
	return WithCallObserver(func(s State) {
		if s == StateGenerating {
			select {
			case ch <- struct{}{}:
			default:
			}
		}
	}), ch
}

func TestSubmitWhileBusy(t *testing.T) {
	api := newFakeAPI()
	release := make(chan struct{})
	blockingGenerate(api, release)
	observe, generating := generatingSignal()
	f := started(t, api, WithFixedCity("Paris"), observe)
	submitAll(t, f, "2")

	done := make(chan error, 1)
	go func() { done <- f.Submit(context.Background(), "2026-05-01") }()

	select {
	case <-generating:
	case <-time.After(2 * time.Second):
		t.Fatal("generation never started")
	}

	assert.True(t, f.Busy())
	assert.Equal(t, StateGenerating, f.State())
	assert.ErrorIs(t, f.Submit(context.Background(), "again"), ErrBusy)
	assert.ErrorIs(t, f.RequestCredits(context.Background()), ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, f.Busy())
	assert.Equal(t, StateOfferGuideList, f.State())
	assert.Len(t, api.generateRequests(), 1)
}

func TestCloseDropsLateResult(t *testing.T) {
	api := newFakeAPI()
	blockingGenerate(api, make(chan struct{}))
	observe, generating := generatingSignal()
	f := started(t, api, WithFixedCity("Paris"), observe)
	submitAll(t, f, "2")
	before := len(f.Transcript())

	done := make(chan error, 1)
	go func() { done <- f.Submit(context.Background(), "2026-05-01") }()

	select {
	case <-generating:
	case <-time.After(2 * time.Second):
		t.Fatal("generation never started")
	}

	f.Close()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight call was not cancelled")
	}

	assert.Equal(t, StateClosed, f.State())
	assert.Len(t, f.Transcript(), before+1, "only the user's answer is recorded")
	assert.ErrorIs(t, f.Submit(context.Background(), "hello"), ErrClosed)
	assert.ErrorIs(t, f.Start(context.Background()), ErrClosed)
}

func TestCallerContextCancelsCall(t *testing.T) {
	api := newFakeAPI()
	blockingGenerate(api, make(chan struct{}))
	f := started(t, api, WithFixedCity("Paris"))
	submitAll(t, f, "2")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, f.Submit(ctx, "2026-05-01"))

	assert.Equal(t, StatePostItinerary, f.State())
	assert.True(t, lastMessageBefore(t, f, 1).IsError)
}

func TestNumberAnswers(t *testing.T) {
	q := models.Question{ID: "q-days", Type: models.QuestionTypeNumber}

	testCases := []struct {
		name  string
		input string
		ok    bool
	}{
		{name: "integer", input: "3", ok: true},
		{name: "decimal with spaces", input: " 2.5 ", ok: true},
		{name: "negative", input: "-1", ok: true},
		{name: "word", input: "abc"},
		{name: "infinity", input: "inf"},
		{name: "spelled infinity", input: "-Infinity"},
		{name: "not a number", input: "NaN"},
		{name: "hex float", input: "0x1p3"},
		{name: "hex integer", input: "0X10"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			value, problem := validateAnswer(q, testCase.input)
			if testCase.ok {
				assert.Empty(t, problem)
				assert.Equal(t, strings.TrimSpace(testCase.input), value)
				return
			}
			assert.Equal(t, problemNumber, problem)
		})
	}
}

func TestResetBumpsEpoch(t *testing.T) {
	api := newFakeAPI()
	api.generateErr = apierr.Classify(500, nil)
	f := started(t, api, WithFixedCity("Paris"))
	submitAll(t, f, "2", "2026-05-01", "No")
	require.Equal(t, StatePostItinerary, f.State())
	assert.Equal(t, uint64(0), f.Epoch())

	submitAll(t, f, OptionGenerateNew)
	assert.Equal(t, uint64(0), f.Epoch(), "regenerating keeps the conversation")

	submitAll(t, f, OptionModify)
	assert.Equal(t, uint64(1), f.Epoch())
	assert.Equal(t, StateAwaitingAnswer, f.State())
}
