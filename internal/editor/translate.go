package editor

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sumeshkk123/cloud-sub008/internal/logging"
	"golang.org/x/sync/errgroup"
)

type fieldResult struct {
	text    string
	ok      bool
	skipped bool
}

type translationRun struct {
	title       *fieldResult
	description *fieldResult
	keywords    *fieldResult
	features    []fieldResult
}

func (r translationRun) counts() (succeeded, failed int) {
	tally := func(res fieldResult) {
		switch {
		case res.skipped:
		case res.ok:
			succeeded++
		default:
			failed++
		}
	}
	for _, res := range []*fieldResult{r.title, r.description, r.keywords} {
		if res != nil {
			tally(*res)
		}
	}
	for _, res := range r.features {
		tally(res)
	}
	return succeeded, failed
}

// AutoTranslate fills target's free-text fields from the default locale
// draft. Title, description and keywords are requested independently;
// feature items are requested one at a time so results stay index-aligned.
// Fields whose request fails keep the source text. When every request fails
// the target draft is left untouched.
func (c *Controller) AutoTranslate(ctx context.Context, target string) error {
	c.mu.Lock()
	_, known := c.drafts[target]
	source := c.drafts[c.defaultLocale].Record.clone()
	c.mu.Unlock()

	switch {
	case c.translator == nil:
		c.notify(Notification{Level: LevelError, Operation: "translate", Message: "Auto-translate is not configured"})
		return ErrTranslatorRequired
	case !known:
		c.notify(Notification{Level: LevelError, Operation: "translate", Message: "Unknown locale " + target})
		return fmt.Errorf("%w: %s", ErrUnknownLocale, target)
	case target == c.defaultLocale:
		message := "Auto-translate is not available for the source locale"
		c.notify(Notification{Level: LevelError, Operation: "translate", Message: message})
		return validationError(message, "locale")
	case strings.TrimSpace(source.Title) == "" || strings.TrimSpace(source.Description) == "":
		message := "Fill in the " + c.defaultLocale + " title and description before translating"
		c.notify(Notification{Level: LevelError, Operation: "translate", Message: message})
		return validationError(message, "title")
	}

	done := c.begin(func(s *Status, on bool) { s.Translating = on })
	defer done()

	logger := logging.WithRecordContext(c.logger.WithContext(ctx), string(c.kind), c.RecordID(), target)
	run := c.translateAll(ctx, source, target)
	succeeded, failed := run.counts()

	if succeeded == 0 && failed > 0 {
		logger.Warn("editor.translate.failed", "failed", failed)
		c.notify(Notification{Level: LevelError, Operation: "translate", Message: genericTranslateMessage, Failed: failed})
		_, err := networkError(fmt.Errorf("editor: all %d translation requests failed", failed), genericTranslateMessage)
		return err
	}

	c.mu.Lock()
	draft := c.drafts[target]
	pick := func(res *fieldResult, fallback string) string {
		if res != nil && res.ok {
			return res.text
		}
		return fallback
	}
	draft.Title = pick(run.title, source.Title)
	draft.Description = pick(run.description, source.Description)
	draft.Keywords = pick(run.keywords, source.Keywords)
	features := slices.Clone(source.Features)
	for i, res := range run.features {
		if res.ok {
			features[i] = res.text
		}
	}
	if features == nil {
		features = []string{}
	}
	draft.Features = features
	c.dirty[target] = true
	c.mu.Unlock()

	if failed > 0 {
		logger.Warn("editor.translate.partial", "succeeded", succeeded, "failed", failed)
		c.notify(Notification{
			Level:     LevelWarning,
			Operation: "translate",
			Message:   fmt.Sprintf("Translated %d fields, %d kept the original text", succeeded, failed),
			Succeeded: succeeded,
			Failed:    failed,
		})
		return &PartialTranslationError{Locale: target, Succeeded: succeeded, Failed: failed}
	}

	logger.Info("editor.translate.succeeded", "fields", succeeded)
	c.notify(Notification{Level: LevelSuccess, Operation: "translate", Message: fmt.Sprintf("Translated %d fields", succeeded), Succeeded: succeeded})
	return nil
}

func (c *Controller) translateAll(ctx context.Context, source Record, target string) translationRun {
	var (
		run   translationRun
		group errgroup.Group
	)
	field := func(text string) *fieldResult {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		res := &fieldResult{}
		group.Go(func() error {
			res.text, res.ok = c.translate(ctx, text, target)
			return nil
		})
		return res
	}
	run.title = field(source.Title)
	run.description = field(source.Description)
	run.keywords = field(source.Keywords)

	if len(source.Features) > 0 {
		run.features = make([]fieldResult, len(source.Features))
		group.Go(func() error {
			for i, item := range source.Features {
				if strings.TrimSpace(item) == "" {
					run.features[i] = fieldResult{text: item, skipped: true}
					continue
				}
				run.features[i].text, run.features[i].ok = c.translate(ctx, item, target)
			}
			return nil
		})
	}

	_ = group.Wait()
	return run
}

func (c *Controller) translate(ctx context.Context, text, target string) (string, bool) {
	translated, err := c.translator.Translate(ctx, text, c.defaultLocale, target)
	if err != nil {
		c.logger.WithContext(ctx).Debug("editor.translate.field_failed", "target", target, "error", err)
		return "", false
	}
	if strings.TrimSpace(translated) == "" {
		return "", false
	}
	return translated, true
}
