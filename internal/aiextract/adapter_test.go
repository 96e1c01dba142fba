package aiextract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-extractor/internal/document"
	"github.com/jonathan/resume-extractor/internal/links"
	"github.com/jonathan/resume-extractor/internal/llm"
	"github.com/jonathan/resume-extractor/internal/schemas"
	"github.com/jonathan/resume-extractor/internal/types"
)

type stubClient struct {
	response   string
	err        error
	calls      int
	prompt     string
	attachment llm.Attachment
}

func (s *stubClient) GenerateFromDocument(ctx context.Context, prompt string, doc llm.Attachment, _ llm.ModelTier) (string, error) {
	s.calls++
	s.prompt = prompt
	s.attachment = doc
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.response, s.err
}

func (s *stubClient) Close() error { return nil }

const modelResponse = "```json\n" + `{
  "firstName": "AI-Jane",
  "lastName": "Doe",
  "title": "Software Engineer",
  "yearsOfExperience": "6+",
  "skills": ["shaden ui", "React", "react"],
  "contact": {"email": "jane@example.com", "linkedin": "linkedin.com/in/jane", "portfolio": "n/a"},
  "socialLinks": [{"platformName": "Linkedin", "url": "linkedin.com/in/jane"}],
  "extractedUrls": ["https://linkedin.com/in/jane", "https://jane.vercel.app"]
}` + "\n```"

func pdfInput() Input {
	return Input{Data: []byte("%PDF-1.4 fake"), Doc: &document.Document{Format: document.FormatPDF}}
}

func TestRun_NotConfigured(t *testing.T) {
	a := NewAdapter(nil)
	assert.False(t, a.Configured())

	fallback := types.NewRecord()
	fallback.FirstName = "Jane"
	out, err := a.Run(context.Background(), pdfInput(), fallback)
	require.NoError(t, err)
	assert.Equal(t, "Jane", out.Record.FirstName)
	assert.False(t, out.UsedAI)

	_, err = a.Extract(context.Background(), pdfInput(), nil)
	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRun_RepairsLinksAndSkills(t *testing.T) {
	client := &stubClient{response: modelResponse}
	classified := links.ClassifyMultiple([]types.RawLink{
		{URL: "https://github.com/jane", SourceType: types.SourceAnnotation, Confidence: 1},
	})
	in := pdfInput()
	in.Classified = classified

	out, err := NewAdapter(client).Run(context.Background(), in, nil)
	require.NoError(t, err)
	require.True(t, out.UsedAI)
	rec := out.Record

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "AI-Jane", rec.FirstName)
	assert.Equal(t, types.Years(6), rec.YearsOfExperience)
	assert.Equal(t, []string{"shadcn/ui", "React"}, rec.Skills)

	assert.Equal(t, "https://linkedin.com/in/jane", rec.Contact.Linkedin, "invalid model URL replaced from raw response")
	assert.Equal(t, "https://jane.vercel.app", rec.Contact.Portfolio)
	assert.Equal(t, "https://github.com/jane", rec.Contact.Github, "filled from document links")
	assert.Empty(t, rec.Contact.Leetcode)

	for slot, want := range map[string]string{
		types.SlotLinkedin:  "https://linkedin.com/in/jane",
		types.SlotGithub:    "https://github.com/jane",
		types.SlotPortfolio: "https://jane.vercel.app",
		types.SlotLeetcode:  "",
	} {
		link, ok := rec.SocialLink(slot)
		require.True(t, ok, slot)
		assert.Equal(t, want, link.URL, slot)
	}
	assert.Len(t, rec.SocialLinks, 4)
	assert.Equal(t, []string{"https://linkedin.com/in/jane", "https://jane.vercel.app"}, rec.ExtractedURLs)
	assert.Equal(t, rec.ExtractedURLs, out.RawURLs)
}

func TestRun_Request(t *testing.T) {
	t.Run("attachment", func(t *testing.T) {
		client := &stubClient{response: `{}`}
		_, err := NewAdapter(client).Extract(context.Background(), pdfInput(), nil)
		require.NoError(t, err)
		assert.Equal(t, "application/pdf", client.attachment.MIMEType)
		assert.Contains(t, client.prompt, "attached to this message as a PDF document")
		assert.Contains(t, client.prompt, "URL ASSIGNMENT RULES:")
		assert.NotContains(t, client.prompt, "Input text:")
	})

	t.Run("inline text", func(t *testing.T) {
		client := &stubClient{response: `{}`}
		in := Input{Doc: &document.Document{Format: document.FormatText, Text: "Jane Doe\nGo developer"}}
		_, err := NewAdapter(client).Extract(context.Background(), in, nil)
		require.NoError(t, err)
		assert.Empty(t, client.attachment.Data)
		assert.Contains(t, client.prompt, "Input text:\n\"\"\"\nJane Doe\nGo developer")
	})

	t.Run("nothing to send", func(t *testing.T) {
		client := &stubClient{response: `{}`}
		_, err := NewAdapter(client).Extract(context.Background(), Input{}, nil)
		var svcErr *AIServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Zero(t, client.calls)
	})
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name   string
		client *stubClient
		check  func(t *testing.T, err error)
	}{
		{
			name:   "service failure",
			client: &stubClient{err: errors.New("quota exceeded")},
			check: func(t *testing.T, err error) {
				var svcErr *AIServiceError
				require.ErrorAs(t, err, &svcErr)
				assert.Contains(t, err.Error(), "quota exceeded")
			},
		},
		{
			name:   "not json",
			client: &stubClient{response: "I could not read the document."},
			check: func(t *testing.T, err error) {
				var outErr *ModelOutputError
				require.ErrorAs(t, err, &outErr)
				assert.Equal(t, "I could not read the document.", outErr.Raw)
			},
		},
		{
			name:   "truncated object",
			client: &stubClient{response: `{"firstName": "Jane", "skills": ["Go"`},
			check: func(t *testing.T, err error) {
				var outErr *ModelOutputError
				assert.ErrorAs(t, err, &outErr)
			},
		},
		{
			name:   "wrong shape",
			client: &stubClient{response: `{"skills": "Go, SQL"}`},
			check: func(t *testing.T, err error) {
				var outErr *ModelOutputError
				require.ErrorAs(t, err, &outErr)
				var vErr *schemas.ValidationError
				assert.ErrorAs(t, err, &vErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+" without fallback", func(t *testing.T) {
			_, err := NewAdapter(tt.client).Extract(context.Background(), pdfInput(), nil)
			require.Error(t, err)
			tt.check(t, err)
		})
		t.Run(tt.name+" with fallback", func(t *testing.T) {
			fallback := types.NewRecord()
			fallback.FirstName = "Jane"
			out, err := NewAdapter(tt.client).Run(context.Background(), pdfInput(), fallback)
			require.NoError(t, err)
			assert.Equal(t, "Jane", out.Record.FirstName)
			assert.False(t, out.UsedAI)
			tt.check(t, out.Absorbed)
		})
	}
}

func TestRun_CancelledIsNotAbsorbed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAdapter(&stubClient{response: `{}`}).Extract(ctx, pdfInput(), types.NewRecord())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_MergesFallback(t *testing.T) {
	fallback := types.NewRecord()
	fallback.FirstName = "Jane"
	fallback.Skills = []string{"Go", "react"}

	out, err := NewAdapter(&stubClient{response: modelResponse}, WithMaxSkills(3)).Run(context.Background(), pdfInput(), fallback)
	require.NoError(t, err)
	assert.True(t, out.UsedAI)
	assert.Equal(t, "Jane", out.Record.FirstName)
	assert.Equal(t, "Doe", out.Record.LastName)
	assert.Equal(t, []string{"Go", "react", "shadcn/ui"}, out.Record.Skills)
}

func TestParseRecord(t *testing.T) {
	rec, err := ParseRecord("Sure, here it is:\n{\"firstName\": \"Jane\", \"skills\": null, \"education\": [\"BSc\"]} Hope that helps")
	require.NoError(t, err)
	assert.Equal(t, "Jane", rec.FirstName)
	assert.Equal(t, []string{}, rec.Skills)
	require.Len(t, rec.Education, 1)
	assert.Equal(t, "BSc", rec.Education[0].Text)

	_, err = ParseRecord("   ")
	var outErr *ModelOutputError
	assert.ErrorAs(t, err, &outErr)
}
