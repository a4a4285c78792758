package template

import "github.com/alnah/go-promptcraft/internal/category"

// templates maps category names to their text.
var templates = map[string]Template{
	category.Email: {
		System:  "You are an expert email writer.",
		Lead:    "Write a professional email based on this request",
		Heading: "Structure the email with",
		Checklist: []string{
			"Appropriate greeting",
			"Clear subject line",
			"Main message body with all necessary details",
			"Professional closing",
			"Proper email etiquette",
		},
		Closing: "Make it ready to send and include all relevant information the recipient needs.",
	},
	category.Coding: {
		System:  "You are an expert software developer and coding instructor.",
		Lead:    "Help solve this coding problem",
		Heading: "Provide",
		Checklist: []string{
			"Step-by-step solution approach",
			"Complete code examples with comments",
			"Explanation of the logic and algorithms used",
			"Best practices and optimization tips",
			"Error handling and edge cases",
			"Testing suggestions",
		},
		Closing: "Make the solution clear, well-documented, and production-ready.",
	},
	category.Business: {
		System:  "You are a business strategy consultant and startup advisor.",
		Lead:    "Create a comprehensive business plan for",
		Heading: "Include",
		Checklist: []string{
			"Executive summary",
			"Market analysis and target audience",
			"Competitive landscape",
			"Revenue model and pricing strategy",
			"Marketing and sales approach",
			"Operations plan",
			"Financial projections",
			"Risk assessment and mitigation",
			"Implementation timeline",
		},
		Closing: "Make it actionable, realistic, and investor-ready.",
	},
	category.Content: {
		System:  "You are a professional content creator and social media strategist.",
		Lead:    "Create engaging content for",
		Heading: "Develop",
		Checklist: []string{
			"Compelling headline/title",
			"Structured content outline",
			"Engaging copy for the main content",
			"Call-to-action",
			"Content variations for different platforms",
			"SEO optimization suggestions",
			"Engagement strategies",
		},
		Closing: "Make it shareable, engaging, and platform-optimized.",
	},
	category.Resume: {
		System:  "You are a professional resume writer and career coach.",
		Lead:    "Help optimize a resume for",
		Heading: "Focus on",
		Checklist: []string{
			"Professional summary/objective",
			"Skills section optimization",
			"Achievement-focused bullet points",
			"Action verbs and quantifiable results",
			"ATS-friendly formatting",
			"Industry-specific keywords",
			"Cover letter suggestions",
			"Interview preparation tips",
		},
		Closing: "Make it stand out to recruiters and pass ATS systems.",
	},
	category.Marketing: {
		System:  "You are a marketing copywriter and brand strategist.",
		Lead:    "Create compelling marketing materials for",
		Heading: "Develop",
		Checklist: []string{
			"Attention-grabbing headlines",
			"Persuasive copy that converts",
			"Emotional triggers and benefits",
			"Call-to-action statements",
			"Multiple variations for A/B testing",
			"Brand voice consistency",
			"Target audience messaging",
			"Conversion optimization tips",
		},
		Closing: "Make it persuasive, memorable, and conversion-focused.",
	},
	category.UX: {
		System:  "You are a UX writer and user experience designer.",
		Lead:    "Design user-centered copy for",
		Heading: "Create",
		Checklist: []string{
			"Clear, concise interface text",
			"User-friendly error messages",
			"Helpful microcopy and tooltips",
			"Accessible language for all users",
			"Consistent tone and voice",
			"User journey optimization",
			"Conversion-focused messaging",
			"Accessibility considerations",
		},
		Closing: "Make it intuitive, helpful, and user-friendly.",
	},
	category.Presentation: {
		System:  "You are an expert presentation designer and corporate communications specialist.",
		Lead:    "Create a compelling presentation for",
		Heading: "Develop",
		Checklist: []string{
			"Clear, engaging slide content",
			"Logical flow and structure",
			"Key talking points for each slide",
			"Visual suggestions and layout ideas",
			"Audience-appropriate messaging",
			"Call-to-action or next steps",
			"Speaker notes and delivery tips",
			"Time management recommendations",
		},
		Closing: "Make it professional, engaging, and ready for delivery.",
	},
	category.HR: {
		System:  "You are an HR specialist and employee communications expert.",
		Lead:    "Create HR-focused content for",
		Heading: "Develop",
		Checklist: []string{
			"Employee-centered messaging",
			"Clear communication strategy",
			"Appropriate tone for internal audience",
			"Actionable information and next steps",
			"Compliance considerations",
			"Engagement and participation elements",
			"Follow-up and feedback mechanisms",
			"Cultural sensitivity and inclusivity",
		},
		Closing: "Make it clear, engaging, and aligned with HR best practices.",
	},
	category.Leave: {
		System:  "You are an HR assistant who drafts clear, courteous workplace communications.",
		Lead:    "Write a leave request based on this need",
		Heading: "Include",
		Checklist: []string{
			"Subject line stating the request and dates",
			"Polite greeting addressed to the manager",
			"Exact leave dates and total number of days",
			"Reason for the leave, stated briefly",
			"Handover plan for ongoing work",
			"Availability and contact details during the absence",
			"Request for approval and thanks",
		},
		Closing: "Make it concise, respectful, and ready to send to a manager or HR.",
	},
	category.Learning: {
		System:  "You are an experienced teacher and learning coach.",
		Lead:    "Design a personalized learning plan for",
		Heading: "Include",
		Checklist: []string{
			"Assessment of the starting level",
			"Clear learning objectives",
			"Week-by-week schedule with milestones",
			"Recommended resources (books, courses, tutorials)",
			"Hands-on exercises and projects",
			"Ways to measure progress",
			"Tips for staying motivated",
		},
		Closing: "Make it realistic, structured, and adapted to the available time.",
	},
	category.Blog: {
		System:  "You are a professional blogger and content strategist.",
		Lead:    "Write a blog post about",
		Heading: "Structure it with",
		Checklist: []string{
			"Attention-grabbing title",
			"Engaging introduction with a hook",
			"Clear sections with subheadings",
			"Examples, data, or anecdotes",
			"SEO-friendly keywords and meta description",
			"Conclusion with a call-to-action",
		},
		Closing: "Make it readable, informative, and easy to share.",
	},
	category.AppIdea: {
		System:  "You are a product strategist and experienced app developer.",
		Lead:    "Develop this app idea into a product concept",
		Heading: "Cover",
		Checklist: []string{
			"Problem statement and target users",
			"Core features for a minimum viable product",
			"User flow and key screens",
			"Suggested technology stack",
			"Monetization options",
			"Competitors and differentiation",
			"Launch and validation plan",
		},
		Closing: "Make it practical, focused, and ready to prototype.",
	},
	category.ImageGeneration: {
		System:  "You are an expert prompt engineer for AI image generation.",
		Lead:    "Write a detailed image generation prompt for",
		Heading: "Specify",
		Checklist: []string{
			"Main subject and its details",
			"Setting and background",
			"Art style or medium",
			"Lighting and color palette",
			"Composition and camera angle",
			"Mood and atmosphere",
			"Elements to avoid (negative prompt)",
		},
		Closing: "Make it vivid, specific, and ready to paste into an image generator.",
	},
	category.General: {
		System:  "You are an expert problem-solver and consultant.",
		Lead:    "Provide comprehensive assistance with",
		Heading: "Deliver",
		Checklist: []string{
			"Detailed problem analysis",
			"Multiple solution approaches",
			"Step-by-step implementation guide",
			"Practical examples and case studies",
			"Potential challenges and solutions",
			"Best practices and recommendations",
			"Resources for further learning",
			"Success metrics and evaluation",
		},
		Closing: "Make it thorough, practical, and immediately actionable.",
	},
}
