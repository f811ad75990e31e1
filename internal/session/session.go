// Package session sequences a learner through onboarding, search,
// curation, watching, quizzes and the final summary.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/learnflow/internal/curation"
	"github.com/abhisek/learnflow/internal/kvstore"
	"github.com/abhisek/learnflow/internal/llm"
	"github.com/abhisek/learnflow/internal/logging"
	"github.com/abhisek/learnflow/internal/profile"
	"github.com/abhisek/learnflow/internal/progress"
	"github.com/abhisek/learnflow/internal/quiz"
	"github.com/abhisek/learnflow/internal/viewgate"
	"github.com/abhisek/learnflow/internal/youtube"
)

// Config holds orchestrator settings.
type Config struct {
	QuestionCount    int
	SelectedVideos   int
	MaxSearchResults int
	MinViewTime      time.Duration
	Temperature      float64
	MaxTokens        int
}

// DefaultConfig returns the stock settings.
func DefaultConfig() Config {
	return Config{
		QuestionCount:    quiz.DefaultQuestionCount,
		SelectedVideos:   5,
		MaxSearchResults: 20,
		MinViewTime:      viewgate.DefaultMinimum,
		Temperature:      0.7,
		MaxTokens:        1024,
	}
}

// Deps are the collaborators an Orchestrator is built from. Searcher and
// Provider may be nil; without a provider every LLM step uses its
// fallback.
type Deps struct {
	KV       *kvstore.Store
	Searcher youtube.Searcher
	Provider llm.Provider
	Config   Config
	Log      *logging.Logger
	Now      func() time.Time

	// OnTick is called every second while a video is open.
	OnTick func(elapsed int)
}

// Orchestrator owns the current section and drives every collaborator.
// It is not safe for concurrent use.
type Orchestrator struct {
	kv       *kvstore.Store
	profiles *profile.Repository
	tracker  *progress.Tracker
	curator  *curation.Curator
	engine   *quiz.Engine
	history  *quiz.History
	gate     *viewgate.Timer
	searcher youtube.Searcher
	provider llm.Provider
	cfg      Config
	log      *logging.Logger
	now      func() time.Time

	section Section
	videoID string
	message string
	chat    []llm.Message

	// chatVideo is the video the tutor history belongs to.
	chatVideo string
}

// New wires an Orchestrator.
func New(d Deps) *Orchestrator {
	if d.Log == nil {
		d.Log = logging.Nop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	def := DefaultConfig()
	if d.Config.QuestionCount <= 0 {
		d.Config.QuestionCount = def.QuestionCount
	}
	if d.Config.SelectedVideos <= 0 {
		d.Config.SelectedVideos = def.SelectedVideos
	}
	if d.Config.MaxSearchResults <= 0 {
		d.Config.MaxSearchResults = def.MaxSearchResults
	}
	if d.Config.MinViewTime <= 0 {
		d.Config.MinViewTime = def.MinViewTime
	}
	if d.Config.MaxTokens <= 0 {
		d.Config.MaxTokens = def.MaxTokens
	}

	log := d.Log.Named("session")
	tracker := progress.NewTracker(d.KV, progress.WithClock(d.Now), progress.WithLogger(d.Log))
	history := quiz.NewHistory(d.KV)
	llmCfg := quiz.Config{MaxTokens: d.Config.MaxTokens, Temperature: d.Config.Temperature}
	gen := quiz.NewGenerator(d.Provider, llmCfg, d.Log, d.Now)

	gateOpts := []viewgate.Option{viewgate.WithMinimum(d.Config.MinViewTime), viewgate.WithClock(d.Now)}
	if d.OnTick != nil {
		gateOpts = append(gateOpts, viewgate.WithOnTick(d.OnTick))
	}

	return &Orchestrator{
		kv:       d.KV,
		profiles: profile.NewRepository(d.KV),
		tracker:  tracker,
		curator:  curation.New(d.Provider, curation.Config{MaxTokens: d.Config.MaxTokens, Temperature: d.Config.Temperature}, d.Log),
		engine:   quiz.NewEngine(gen, tracker, history, quiz.WithClock(d.Now), quiz.WithLogger(log)),
		history:  history,
		gate:     viewgate.New(gateOpts...),
		searcher: d.Searcher,
		provider: d.Provider,
		cfg:      d.Config,
		log:      log,
		now:      d.Now,
		section:  SectionOnboarding,
	}
}

// Section returns the current section.
func (o *Orchestrator) Section() Section { return o.section }

// Message returns the last user-visible error message, or "".
func (o *Orchestrator) Message() string { return o.message }

// Tracker exposes the progress tracker for read-only views.
func (o *Orchestrator) Tracker() *progress.Tracker { return o.tracker }

// Quiz exposes the quiz engine for answering and navigation.
func (o *Orchestrator) Quiz() *quiz.Engine { return o.engine }

// History exposes the quiz history.
func (o *Orchestrator) History() *quiz.History { return o.history }

// Gate exposes the view-gate timer of the open video.
func (o *Orchestrator) Gate() *viewgate.Timer { return o.gate }

// CurrentVideoID returns the open video, or "".
func (o *Orchestrator) CurrentVideoID() string { return o.videoID }

// Profile returns the stored learner profile, or nil.
func (o *Orchestrator) Profile(ctx context.Context) *profile.UserProfile {
	return o.profiles.Load(ctx)
}

// CurrentSession returns the persisted curated path, or nil.
func (o *Orchestrator) CurrentSession(ctx context.Context) *CurrentSession {
	var cs CurrentSession
	if !o.kv.Get(ctx, kvstore.KeyCurrentSession, &cs) {
		return nil
	}
	return &cs
}

func (o *Orchestrator) fail(msg string, err error) error {
	o.message = msg
	o.log.Warn(msg, "section", string(o.section), "error", err)
	return err
}

func (o *Orchestrator) clearMessage() { o.message = "" }

// Onboard validates and stores the learner profile and moves to Search.
// A *profile.ValidationError leaves everything unchanged.
func (o *Orchestrator) Onboard(ctx context.Context, name, level, goal string) (*profile.UserProfile, error) {
	p, err := profile.New(name, level, goal, o.now())
	if err != nil {
		o.message = "Please correct the highlighted fields."
		return nil, err
	}
	if !o.profiles.Save(ctx, p) {
		o.log.Warn("profile not persisted")
	}
	o.clearMessage()
	o.section = SectionSearch
	return p, nil
}

// Resume picks the section to show at startup from persisted state.
func (o *Orchestrator) Resume(ctx context.Context) Section {
	switch {
	case o.profiles.Load(ctx) == nil:
		o.section = SectionOnboarding
	case o.tracker.Current(ctx) == nil || o.CurrentSession(ctx) == nil:
		o.section = SectionSearch
	case o.tracker.IsComplete(ctx):
		o.section = SectionSummary
	default:
		o.section = SectionDashboard
	}
	return o.section
}

// BuildLearningPath searches for candidate videos, curates them and starts
// a new learning session. On failure the orchestrator stays in Search.
func (o *Orchestrator) BuildLearningPath(ctx context.Context) (*CurrentSession, error) {
	p := o.profiles.Load(ctx)
	if p == nil {
		return nil, o.fail("Please complete onboarding first.", ErrNoProfile)
	}
	if o.searcher == nil {
		return nil, o.fail("Video search is not configured. Set a YouTube API key.", ErrNoSearcher)
	}
	o.section = SectionSearch

	query := profile.SearchQuery(p.LearningGoal, p.SkillLevel)
	results, err := o.searcher.Search(ctx, query, o.cfg.MaxSearchResults)
	if err != nil {
		return nil, o.fail("Failed to search videos. Please try again.", fmt.Errorf("search videos: %w", err))
	}
	if len(results) == 0 {
		return nil, o.fail("No videos found for your learning goal. Try a different goal.", ErrNoVideos)
	}

	o.section = SectionSelection
	candidates := make([]curation.Candidate, len(results))
	byID := make(map[string]youtube.VideoSummary, len(results))
	for i, r := range results {
		candidates[i] = curation.Candidate{VideoID: r.ID, Title: r.Title, Description: r.Description}
		byID[r.ID] = r
	}
	sel := o.curator.Select(ctx, candidates, p.LearningGoal, p.SkillLevel, o.cfg.SelectedVideos)

	ids := make([]string, len(sel.Videos))
	for i, v := range sel.Videos {
		ids[i] = v.VideoID
	}
	details := make(map[string]youtube.VideoDetail)
	if d, err := o.searcher.Details(ctx, ids); err != nil {
		o.log.Warn("video details unavailable", "error", err)
	} else {
		for _, v := range d {
			details[v.ID] = v
		}
	}

	cs := &CurrentSession{
		Goal:       p.LearningGoal,
		SkillLevel: p.SkillLevel,
		Query:      query,
		Videos:     make([]Video, 0, len(sel.Videos)),
		Plan:       sel.Plan,
		Source:     sel.Source,
		CreatedAt:  o.now(),
	}
	tracked := make([]progress.Video, 0, len(sel.Videos))
	for _, sv := range sel.Videos {
		summary := byID[sv.VideoID]
		v := Video{
			SelectedVideo: sv,
			Description:   summary.Description,
			ChannelTitle:  summary.ChannelTitle,
			Thumbnail:     summary.Thumbnail,
		}
		if d, ok := details[sv.VideoID]; ok {
			v.DurationSeconds = d.DurationSeconds
		}
		cs.Videos = append(cs.Videos, v)
		tracked = append(tracked, progress.Video{ID: sv.VideoID, Title: sv.Title})
	}

	if !o.kv.Set(ctx, kvstore.KeyCurrentSession, cs) {
		o.log.Warn("current session not persisted")
	}
	o.tracker.Initialize(ctx, tracked)
	o.clearMessage()
	o.section = SectionDashboard
	o.log.Info("learning path ready", "goal", p.LearningGoal, "videos", len(cs.Videos), "source", string(sel.Source))
	return cs, nil
}

// OpenVideo opens id and starts its view gate, stopping any running one.
// The tutor history is dropped when id differs from the last video asked
// about.
func (o *Orchestrator) OpenVideo(ctx context.Context, id string) error {
	s := o.tracker.Current(ctx)
	if s == nil {
		return o.fail("Start a learning session first.", ErrNoSession)
	}
	if s.Video(id) == nil {
		return o.fail("That video is not part of your learning path.", ErrUnknownVideo)
	}
	o.engine.Reset()
	o.gate.Start()
	o.videoID = id
	if id != o.chatVideo {
		o.chat = nil
		o.chatVideo = id
	}
	o.clearMessage()
	o.section = SectionVideo
	return nil
}

// LeaveVideo stops the view gate and returns to the dashboard.
func (o *Orchestrator) LeaveVideo() {
	o.gate.Stop()
	o.engine.Reset()
	o.videoID = ""
	o.section = SectionDashboard
}

// CompleteVideo marks the open video complete once the minimum watch time
// has passed. A *GateError is returned before then.
func (o *Orchestrator) CompleteVideo(ctx context.Context) error {
	if o.videoID == "" {
		return o.fail("Open a video first.", ErrNoActiveVideo)
	}
	if !o.gate.HasMetMinimum() {
		err := &GateError{Remaining: o.gate.Remaining()}
		o.message = err.Error()
		return err
	}
	secs := o.gate.Stop()
	if !o.tracker.MarkVideoCompleted(ctx, o.videoID, secs) {
		o.log.Warn("video completion not persisted", "video_id", o.videoID)
	}
	o.clearMessage()
	return nil
}

// StartQuiz generates a quiz for the open, completed video. Generation
// never fails; an LLM problem falls back to template questions.
func (o *Orchestrator) StartQuiz(ctx context.Context) (*quiz.Quiz, error) {
	if o.videoID == "" {
		return nil, o.fail("Open a video first.", ErrNoActiveVideo)
	}
	s := o.tracker.Current(ctx)
	if s == nil {
		return nil, o.fail("Start a learning session first.", ErrNoSession)
	}
	vp := s.Video(o.videoID)
	if vp == nil {
		return nil, o.fail("That video is not part of your learning path.", ErrUnknownVideo)
	}
	if !vp.Completed {
		return nil, o.fail("Complete the video before taking the quiz.", ErrVideoNotCompleted)
	}

	in := quiz.GenerateInput{
		VideoID:    vp.VideoID,
		Title:      vp.Title,
		SkillLevel: profile.Beginner,
		Count:      o.cfg.QuestionCount,
	}
	if p := o.profiles.Load(ctx); p != nil {
		in.SkillLevel = p.SkillLevel
	}
	if cs := o.CurrentSession(ctx); cs != nil {
		if v := cs.Video(vp.VideoID); v != nil {
			in.Description = v.Description
		}
	}

	o.section = SectionQuiz
	q := o.engine.Start(ctx, in)
	o.clearMessage()
	return q, nil
}

// SubmitQuiz grades the active quiz.
func (o *Orchestrator) SubmitQuiz(ctx context.Context) (*quiz.Result, error) {
	res, err := o.engine.Submit(ctx)
	if err != nil {
		var ve *quiz.ValidationError
		if errors.As(err, &ve) {
			o.message = "Please answer all questions before submitting."
			return nil, err
		}
		return nil, o.fail("There is no quiz to submit.", err)
	}
	o.clearMessage()
	return res, nil
}

// RetakeQuiz restarts the submitted quiz with the same questions.
func (o *Orchestrator) RetakeQuiz() error {
	if err := o.engine.Retake(); err != nil {
		return o.fail("Submit the quiz before retaking it.", err)
	}
	o.clearMessage()
	return nil
}

// ContinueLearning opens the next incomplete video, or moves to Summary
// when every video is complete. It returns the opened video.
func (o *Orchestrator) ContinueLearning(ctx context.Context) (*progress.VideoProgress, error) {
	o.gate.Stop()
	o.engine.Reset()
	o.videoID = ""

	if o.tracker.IsComplete(ctx) {
		o.section = SectionSummary
		return nil, nil
	}
	next := o.tracker.NextVideo(ctx)
	if next == nil {
		o.section = SectionSearch
		return nil, o.fail("Start a learning session first.", ErrNoSession)
	}
	if err := o.OpenVideo(ctx, next.VideoID); err != nil {
		return nil, err
	}
	return next, nil
}

// AddNote attaches a note to the open video.
func (o *Orchestrator) AddNote(ctx context.Context, text string) error {
	if o.videoID == "" {
		return o.fail("Open a video first.", ErrNoActiveVideo)
	}
	if !o.tracker.AddNote(ctx, o.videoID, text) {
		return o.fail("Note could not be saved.", ErrNoteRejected)
	}
	o.clearMessage()
	return nil
}

// Theme returns the stored theme name, or "".
func (o *Orchestrator) Theme(ctx context.Context) string {
	var theme string
	o.kv.Get(ctx, kvstore.KeySelectedTheme, &theme)
	return theme
}

// SetTheme stores an opaque theme name.
func (o *Orchestrator) SetTheme(ctx context.Context, name string) bool {
	return o.kv.Set(ctx, kvstore.KeySelectedTheme, name)
}

// StartOver discards the learning session. With all set the profile and
// quiz history are removed too and the learner is sent back to onboarding.
func (o *Orchestrator) StartOver(ctx context.Context, all bool) {
	o.gate.Stop()
	o.engine.Reset()
	o.videoID = ""
	o.chat = nil
	o.chatVideo = ""
	o.tracker.Clear(ctx)
	o.kv.Remove(ctx, kvstore.KeyCurrentSession)
	o.clearMessage()

	if all {
		o.profiles.Clear(ctx)
		o.history.Clear(ctx)
		o.section = SectionOnboarding
		return
	}
	o.section = SectionSearch
}

// Close stops any running view gate.
func (o *Orchestrator) Close() {
	o.gate.Stop()
}
