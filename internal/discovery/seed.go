package discovery

import "go-jobscout-backend/internal/domain"

// SeedCompanies is a curated list of companies known to have workable
// career pages, used to bootstrap the discovery loop.
var SeedCompanies = []domain.SeedCompany{
	{Name: "Stripe", HomepageURL: "https://stripe.com"},
	{Name: "Airbnb", HomepageURL: "https://airbnb.com"},
	{Name: "DoorDash", HomepageURL: "https://doordash.com"},
	{Name: "Instacart", HomepageURL: "https://instacart.com"},
	{Name: "Coinbase", HomepageURL: "https://coinbase.com"},
	{Name: "Dropbox", HomepageURL: "https://dropbox.com"},
	{Name: "Reddit", HomepageURL: "https://reddit.com"},
	{Name: "Twitch", HomepageURL: "https://twitch.tv"},
	{Name: "GitHub", HomepageURL: "https://github.com"},
	{Name: "GitLab", HomepageURL: "https://gitlab.com"},
	{Name: "Atlassian", HomepageURL: "https://atlassian.com"},
	{Name: "JetBrains", HomepageURL: "https://jetbrains.com"},
	{Name: "Vercel", HomepageURL: "https://vercel.com"},
	{Name: "Supabase", HomepageURL: "https://supabase.com"},
	{Name: "Grafana", HomepageURL: "https://grafana.com"},
	{Name: "HashiCorp", HomepageURL: "https://hashicorp.com"},
	{Name: "Docker", HomepageURL: "https://docker.com"},
	{Name: "MongoDB", HomepageURL: "https://mongodb.com"},
	{Name: "Elastic", HomepageURL: "https://elastic.co"},
	{Name: "Cloudflare", HomepageURL: "https://cloudflare.com"},
	{Name: "Datadog", HomepageURL: "https://datadoghq.com"},
	{Name: "PagerDuty", HomepageURL: "https://pagerduty.com"},
	{Name: "Notion", HomepageURL: "https://notion.so"},
	{Name: "Figma", HomepageURL: "https://figma.com"},
	{Name: "Linear", HomepageURL: "https://linear.app"},
	{Name: "Anthropic", HomepageURL: "https://anthropic.com"},
	{Name: "Hugging Face", HomepageURL: "https://huggingface.co"},
	{Name: "Scale AI", HomepageURL: "https://scale.com"},
	{Name: "Plaid", HomepageURL: "https://plaid.com"},
	{Name: "Brex", HomepageURL: "https://brex.com"},
}
