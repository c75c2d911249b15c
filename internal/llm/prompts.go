package llm

import (
	"fmt"
	"strings"

	"creatorlens/internal/core"
)

// BuildCommentsAnalysisPrompt asks for a JSON analysis of a comment sample.
func BuildCommentsAnalysisPrompt(videoTitle string, comments []core.Comment) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Analyze the audience response in these YouTube comments for the video titled %q.

Return ONLY a JSON object with this shape:
{
  "sentiment": {"positive": <0-100>, "neutral": <0-100>, "negative": <0-100>},
  "themes": ["recurring discussion theme", ...],
  "viewersAskedFor": ["content viewers explicitly requested", ...],
  "praise": ["what viewers praised", ...],
  "complaints": ["what viewers criticized", ...]
}

Sentiment percentages must sum to 100. Keep each list under 6 entries.

Comments:
`, videoTitle)
	for i, c := range comments {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, c.Author, c.Text)
	}
	return b.String()
}

// BuildCompetitorAnalysisPrompt asks for the full strategic analysis of a
// competitor video, optionally informed by the comments analysis and framed
// for the requesting creator's channel.
func BuildCompetitorAnalysisPrompt(video core.Video, comments *core.CommentsAnalysis, ownChannelTitle string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You advise the YouTube channel %q. Analyze this competitor video and return ONLY a JSON object:
{
  "whatItsAbout": "one-paragraph summary in your own words, not a rewording of the title",
  "whyItsWorking": ["reason", ...],
  "themes": ["content theme", ...],
  "titlePatterns": ["reusable title pattern", ...],
  "remixIdeas": ["video idea for %s remixing this topic", ...],
  "beatThisVideo": [{"action": "...", "difficulty": "Easy|Medium|Hard", "impact": "Low|Medium|High"}, ...]
}

Competitor video:
Title: %s
Channel: %s
Description: %s
Duration: %d seconds
Views: %d, Likes: %d, Comments: %d
Tags: %s
`,
		ownChannelTitle, ownChannelTitle,
		video.Title, video.ChannelTitle, truncateText(video.Description, 1500),
		video.DurationSec, video.ViewCount, video.LikeCount, video.CommentCount,
		strings.Join(video.Tags, ", "))

	if comments != nil && len(comments.Themes) > 0 {
		fmt.Fprintf(&b, "\nAudience response themes: %s\n", strings.Join(comments.Themes, "; "))
		if len(comments.ViewersAskedFor) > 0 {
			fmt.Fprintf(&b, "Viewers asked for: %s\n", strings.Join(comments.ViewersAskedFor, "; "))
		}
	}
	return b.String()
}

// BuildChecklistPrompt asks for just the beat-this-video checklist.
func BuildChecklistPrompt(video core.Video) string {
	return fmt.Sprintf(`Return ONLY a JSON array of 4-8 actions for outperforming this YouTube video:
[{"action": "specific, concrete action", "difficulty": "Easy|Medium|Hard", "impact": "Low|Medium|High"}, ...]

Video: %q by %s (%d seconds, %d views)
Description: %s`,
		video.Title, video.ChannelTitle, video.DurationSec, video.ViewCount,
		truncateText(video.Description, 800))
}

// BuildRewriteAboutPrompt asks for a corrective rewrite when the generated
// "what it's about" text merely echoes the title.
func BuildRewriteAboutPrompt(videoTitle, about string) string {
	return fmt.Sprintf(`The following summary of the video %q just restates its title. Rewrite it to describe the actual content and angle of the video in 2-3 sentences. Return only the rewritten text, no JSON.

Summary: %s`, videoTitle, about)
}

func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
