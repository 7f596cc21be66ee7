// Package flow drives the conversational itinerary planner: city choice, the
// city's questionnaire, itinerary generation, the guide offer and the restart
// choices. It owns the transcript and talks to the backend only through API.
package flow

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"tour-planner/cmd/planner/apierr"
	"tour-planner/cmd/planner/trace"
	"tour-planner/dto"
	"tour-planner/internal/logger"
	"tour-planner/models"
)

type State int

const (
	StateInit State = iota
	StateAwaitingCity
	StateLoadingQuestions
	StateAwaitingAnswer
	StateGenerating
	StateOfferGuideList
	StatePostItinerary
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateAwaitingCity:
		return "awaiting_city"
	case StateLoadingQuestions:
		return "loading_questions"
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateGenerating:
		return "generating"
	case StateOfferGuideList:
		return "offer_guide_list"
	case StatePostItinerary:
		return "post_itinerary"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type CreditStatus int

const (
	// CreditNone means no credit request has been offered.
	CreditNone CreditStatus = iota
	CreditIdle
	CreditRequesting
	CreditSuccess
	CreditError
)

func (c CreditStatus) String() string {
	switch c {
	case CreditIdle:
		return "idle"
	case CreditRequesting:
		return "requesting"
	case CreditSuccess:
		return "success"
	case CreditError:
		return "error"
	default:
		return "none"
	}
}

// CitySelectionID keys the answer that records the chosen city.
const CitySelectionID = "initial-city-selection"

const (
	OptionYes         = "Yes"
	OptionNo          = "No"
	OptionGenerateNew = "Generate New Itinerary"
	OptionModify      = "Modify Preferences"
)

const basicItineraryDisclaimer = "Note: this is a basic itinerary. We could not use your detailed preferences for this city, so the plan may be less personal."

var (
	ErrBusy                     = errors.New("flow: a request is already in flight")
	ErrClosed                   = errors.New("flow: closed")
	ErrEmptyInput               = errors.New("flow: empty input")
	ErrNotStarted               = errors.New("flow: not started")
	ErrAlreadyStarted           = errors.New("flow: already started")
	ErrCreditRequestUnavailable = errors.New("flow: credit request not available")
)

// Answer pairs a question id (or CitySelectionID) with the raw user input.
type Answer struct {
	QuestionID string
	Value      string
}

// API is the backend surface the flow needs. *plannerclient.Client implements it.
type API interface {
	ListCities(ctx context.Context) ([]models.City, error)
	ListQuestions(ctx context.Context, cityID string) ([]models.Question, error)
	GenerateItinerary(ctx context.Context, req dto.TravelPlanRequest) (dto.TravelPlanData, error)
	RequestCredits(ctx context.Context) error
	GuidesByCity(ctx context.Context, city string) ([]models.Guide, error)
}

type Option func(*Flow)

// WithFixedCity binds the flow to one city; the city prompt is skipped.
func WithFixedCity(name string) Option {
	return func(f *Flow) {
		f.fixedCity = strings.TrimSpace(name)
	}
}

// WithCallObserver registers fn, called with the current state right before
// every backend call. fn runs without the flow lock held.
func WithCallObserver(fn func(State)) Option {
	return func(f *Flow) {
		f.onCall = fn
	}
}

// Flow is safe for concurrent use, but only one backend call runs at a time:
// input that arrives while a call is in flight is rejected with ErrBusy.
type Flow struct {
	api       API
	fixedCity string
	sessionID string
	onCall    func(State)

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	state      State
	busy       bool
	cities     []models.City
	city       models.City
	questions  []models.Question
	step       int
	answers    []Answer
	transcript []Message
	credit     CreditStatus
	basic      bool
	epoch      uint64
}

func New(api API, opts ...Option) *Flow {
	ctx, cancel := context.WithCancel(context.Background())
	f := &Flow{
		api:       api,
		sessionID: trace.GenerateID(),
		ctx:       ctx,
		cancel:    cancel,
		state:     StateInit,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Start loads the city catalog and issues the first prompt.
func (f *Flow) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkIdle(); err != nil {
		return err
	}
	if f.state != StateInit {
		return ErrAlreadyStarted
	}
	return f.boot(ctx)
}

// Submit feeds one line of user input to the flow.
// Backend failures end up in the transcript; the returned error only reports misuse.
func (f *Flow) Submit(ctx context.Context, input string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkIdle(); err != nil {
		return err
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return ErrEmptyInput
	}

	switch f.state {
	case StateInit:
		return ErrNotStarted
	case StateAwaitingCity:
		return f.submitCity(ctx, input)
	case StateAwaitingAnswer:
		return f.submitAnswer(ctx, input)
	case StateOfferGuideList:
		return f.submitGuideChoice(ctx, input)
	case StatePostItinerary:
		return f.submitPostChoice(ctx, input)
	default:
		return ErrBusy
	}
}

// RequestCredits asks the backend for more credits. It is only available after
// an insufficient-credits failure and only once: the status moves from idle to
// requesting and then to success or error, never back to idle.
func (f *Flow) RequestCredits(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkIdle(); err != nil {
		return err
	}
	if f.credit != CreditIdle {
		return ErrCreditRequestUnavailable
	}

	f.credit = CreditRequesting
	alive, err := f.callLocked(ctx, func(ctx context.Context) error {
		return f.api.RequestCredits(ctx)
	})
	if !alive {
		return ErrClosed
	}
	if err != nil {
		f.credit = CreditError
		f.logCallFailure("request credits", err)
		f.appendError("Your credit request could not be sent. " + apierr.UserMessageOf(err))
		return nil
	}
	f.credit = CreditSuccess
	f.appendBot("Your credit request has been sent. You can generate a new itinerary once it is approved.")
	return nil
}

// Close cancels in-flight calls and discards their results.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateClosed {
		return
	}
	f.state = StateClosed
	f.cancel()
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) Step() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

func (f *Flow) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

func (f *Flow) CreditStatus() CreditStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.credit
}

// City returns the active city name, empty before a city is chosen.
func (f *Flow) City() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.city.Name
}

func (f *Flow) SessionID() string {
	return f.sessionID
}

func (f *Flow) Answers() []Answer {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Answer(nil), f.answers...)
}

func (f *Flow) Questions() []models.Question {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Question(nil), f.questions...)
}

// Epoch counts resets. The transcript after a reset can be as long as
// the one before it, so renderers compare epochs rather than lengths.
func (f *Flow) Epoch() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.epoch
}

func (f *Flow) Transcript() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Message(nil), f.transcript...)
}

// ---- transitions; all of them run with f.mu held ----

func (f *Flow) checkIdle() error {
	if f.state == StateClosed {
		return ErrClosed
	}
	if f.busy {
		return ErrBusy
	}
	return nil
}

// boot issues the opening of a conversation, both on Start and after a reset.
func (f *Flow) boot(ctx context.Context) error {
	if f.fixedCity == "" {
		if len(f.cities) == 0 {
			alive, err := f.loadCities(ctx)
			if !alive {
				return ErrClosed
			}
			if err != nil {
				f.appendError(apierr.UserMessageOf(err))
			}
		}
		f.state = StateAwaitingCity
		f.offerCities()
		return nil
	}

	f.answers = []Answer{{QuestionID: CitySelectionID, Value: f.fixedCity}}
	f.appendBot(fmt.Sprintf("Let's plan your trip to %s!", f.fixedCity))

	if len(f.cities) == 0 {
		alive, err := f.loadCities(ctx)
		if !alive {
			return ErrClosed
		}
		if err != nil {
			// the fixed city still works without the catalog, as a basic itinerary
			f.logCallFailure("list cities", err)
		}
	}
	city, ok := models.FindCity(f.cities, f.fixedCity)
	if !ok {
		city = models.City{Name: f.fixedCity}
	}
	return f.enterCity(ctx, city)
}

func (f *Flow) loadCities(ctx context.Context) (bool, error) {
	var cities []models.City
	alive, err := f.callLocked(ctx, func(ctx context.Context) error {
		var err error
		cities, err = f.api.ListCities(ctx)
		return err
	})
	if !alive {
		return false, nil
	}
	if err != nil {
		f.logCallFailure("list cities", err)
		return true, err
	}
	sort.SliceStable(cities, func(i, j int) bool {
		return cities[i].Order < cities[j].Order
	})
	f.cities = cities
	return true, nil
}

func (f *Flow) cityNames() []string {
	names := make([]string, 0, len(f.cities))
	for _, c := range f.cities {
		names = append(names, c.Name)
	}
	return names
}

func (f *Flow) offerCities() {
	f.appendOptions("Hi! I'm your travel planner. Which city would you like to explore?", f.cityNames())
}

func (f *Flow) submitCity(ctx context.Context, input string) error {
	f.appendUser(input)

	if len(f.cities) == 0 {
		alive, err := f.loadCities(ctx)
		if !alive {
			return ErrClosed
		}
		if err != nil {
			f.appendError(apierr.UserMessageOf(err))
			f.offerCities()
			return nil
		}
	}

	city, ok := models.FindCity(f.cities, input)
	if !ok {
		f.appendError(fmt.Sprintf("Sorry, %q is not one of the cities I can plan for. Please pick a city from the list.", input))
		f.offerCities()
		return nil
	}

	f.upsertAnswer(CitySelectionID, input)
	return f.enterCity(ctx, city)
}

// enterCity loads the city's questions. A city without a catalog id or without
// active questions falls through to a basic itinerary.
func (f *Flow) enterCity(ctx context.Context, city models.City) error {
	f.city = city
	f.questions = nil
	f.step = 0
	f.state = StateLoadingQuestions

	if city.ID == "" {
		f.basic = true
		return f.generate(ctx)
	}

	var questions []models.Question
	alive, err := f.callLocked(ctx, func(ctx context.Context) error {
		var err error
		questions, err = f.api.ListQuestions(ctx, city.ID)
		return err
	})
	if !alive {
		return ErrClosed
	}
	if err != nil {
		f.logCallFailure("list questions", err)
		f.appendError(apierr.UserMessageOf(err))
		f.state = StateAwaitingCity
		f.offerCities()
		return nil
	}

	f.questions = models.ActiveQuestions(questions)
	if len(f.questions) == 0 {
		f.basic = true
		f.appendBot(fmt.Sprintf("I don't have detailed questions for %s yet, so I'll prepare a basic itinerary.", city.Name))
		return f.generate(ctx)
	}

	f.basic = false
	f.state = StateAwaitingAnswer
	f.askCurrent()
	return nil
}

func (f *Flow) askCurrent() {
	q := f.questions[f.step]
	m := Message{
		Sender:    SenderBot,
		Type:      MessageText,
		Text:      q.Question,
		InputHint: inputHint(q),
	}
	if q.Type.IsChoice() && len(q.Options) > 0 {
		m.Type = MessageOptions
		m.Options = append([]string(nil), q.Options...)
	}
	f.appendMessage(m)
}

func (f *Flow) submitAnswer(ctx context.Context, input string) error {
	q := f.questions[f.step]
	f.appendUser(input)

	value, problem := validateAnswer(q, input)
	if problem != "" {
		f.appendError(problem)
		f.askCurrent()
		return nil
	}

	f.upsertAnswer(q.ID, value)
	if f.step+1 < len(f.questions) {
		f.step++
		f.askCurrent()
		return nil
	}
	return f.generate(ctx)
}

func (f *Flow) upsertAnswer(questionID, value string) {
	for i := range f.answers {
		if f.answers[i].QuestionID == questionID {
			f.answers[i].Value = value
			return
		}
	}
	f.answers = append(f.answers, Answer{QuestionID: questionID, Value: value})
}

func (f *Flow) answerFor(questionID string) (string, bool) {
	for _, a := range f.answers {
		if a.QuestionID == questionID {
			return a.Value, true
		}
	}
	return "", false
}

// firstUnanswered returns the index of the first question without an answer, or -1.
func (f *Flow) firstUnanswered() int {
	for i, q := range f.questions {
		if q.Type == models.QuestionTypeGuidePrompt {
			continue
		}
		if _, ok := f.answerFor(q.ID); !ok {
			return i
		}
	}
	return -1
}

func (f *Flow) generate(ctx context.Context) error {
	if gap := f.firstUnanswered(); gap >= 0 {
		f.appendBot("Looks like one of the questions still needs an answer. Let's go back to it.")
		f.step = gap
		f.state = StateAwaitingAnswer
		f.askCurrent()
		return nil
	}

	req := dto.TravelPlanRequest{
		CityName:  f.city.Name,
		Questions: append([]models.Question(nil), f.questions...),
		Answers:   make([]string, 0, len(f.questions)),
	}
	for _, q := range f.questions {
		v, _ := f.answerFor(q.ID)
		req.Answers = append(req.Answers, v)
	}

	f.state = StateGenerating
	var plan dto.TravelPlanData
	alive, err := f.callLocked(ctx, func(ctx context.Context) error {
		var err error
		plan, err = f.api.GenerateItinerary(ctx, req)
		return err
	})
	if !alive {
		return ErrClosed
	}
	if err != nil {
		f.logCallFailure("generate itinerary", err)
		creditsExhausted := apierr.KindOf(err) == apierr.KindInsufficientCredits
		f.appendMessage(Message{
			Sender:       SenderBot,
			Type:         MessageError,
			Text:         apierr.UserMessageOf(err),
			IsError:      true,
			CreditAction: creditsExhausted && f.credit == CreditNone,
		})
		if creditsExhausted && f.credit == CreditNone {
			f.credit = CreditIdle
		}
		f.offerPostItinerary()
		return nil
	}

	logger.InfoWithFields("itinerary generated", logger.Fields{
		"session_id": f.sessionID,
		"city":       f.city.Name,
		"plan_id":    plan.PlanID,
		"basic":      f.basic,
	})

	text := plan.Itinerary
	if f.basic {
		text = basicItineraryDisclaimer + "\n\n" + text
	}
	f.appendMessage(Message{
		Sender: SenderBot,
		Type:   MessageItinerary,
		Text:   text,
		PlanID: plan.PlanID,
	})
	f.offerGuides()
	return nil
}

func (f *Flow) offerGuides() {
	f.state = StateOfferGuideList
	f.appendOptions(fmt.Sprintf("Would you like to see the tour guides available in %s?", f.city.Name), []string{OptionYes, OptionNo})
}

func (f *Flow) offerPostItinerary() {
	f.state = StatePostItinerary
	f.appendOptions("What would you like to do next?", []string{OptionGenerateNew, OptionModify})
}

func (f *Flow) submitGuideChoice(ctx context.Context, input string) error {
	f.appendUser(input)

	choice, ok := matchChoice([]string{OptionYes, OptionNo}, input)
	if !ok {
		f.appendError(problemOption)
		f.offerGuides()
		return nil
	}

	if choice == OptionYes {
		var guides []models.Guide
		alive, err := f.callLocked(ctx, func(ctx context.Context) error {
			var err error
			guides, err = f.api.GuidesByCity(ctx, f.city.Name)
			return err
		})
		if !alive {
			return ErrClosed
		}
		switch {
		case err != nil:
			f.logCallFailure("guides by city", err)
			f.appendError(apierr.UserMessageOf(err))
		case len(guides) == 0:
			f.appendBot(fmt.Sprintf("There are no tour guides available in %s right now.", f.city.Name))
		default:
			f.appendMessage(Message{
				Sender: SenderBot,
				Type:   MessageGuides,
				Text:   fmt.Sprintf("Here are the tour guides available in %s:", f.city.Name),
				Guides: guides,
			})
		}
	}

	f.offerPostItinerary()
	return nil
}

func (f *Flow) submitPostChoice(ctx context.Context, input string) error {
	f.appendUser(input)

	choice, ok := matchChoice([]string{OptionGenerateNew, OptionModify}, input)
	if !ok {
		f.appendError(problemOption)
		f.offerPostItinerary()
		return nil
	}

	if choice == OptionGenerateNew {
		return f.generate(ctx)
	}
	return f.reset(ctx)
}

// reset drops the transcript, answers and questions and reopens the conversation.
// The city catalog is kept.
func (f *Flow) reset(ctx context.Context) error {
	f.transcript = nil
	f.answers = nil
	f.questions = nil
	f.step = 0
	f.city = models.City{}
	f.credit = CreditNone
	f.basic = false
	f.state = StateInit
	f.epoch++
	return f.boot(ctx)
}

// callLocked runs fn without holding f.mu. The call context is cancelled when
// either ctx or the flow is done. It reports alive=false when the flow was
// closed while fn ran; the caller must then leave the state untouched.
func (f *Flow) callLocked(ctx context.Context, fn func(ctx context.Context) error) (bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	callCtx, cancel := context.WithCancel(trace.WithSession(ctx, f.sessionID, 0))
	stop := context.AfterFunc(f.ctx, cancel)

	f.busy = true
	state := f.state
	f.mu.Unlock()

	if f.onCall != nil {
		f.onCall(state)
	}
	err := fn(callCtx)

	stop()
	cancel()
	f.mu.Lock()
	f.busy = false
	return f.state != StateClosed, err
}

func (f *Flow) logCallFailure(call string, err error) {
	logger.WarnWithFields("planner call failed", logger.Fields{
		"session_id": f.sessionID,
		"call":       call,
		"kind":       apierr.KindOf(err).String(),
		"error":      err.Error(),
	})
}
