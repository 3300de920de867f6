package insights

import (
	"strings"
	"text/template"
)

// promptData carries every named placeholder the feature templates use.
// Fields a template does not reference are simply ignored when rendering.
type promptData struct {
	CandidateName  string
	Context        string
	JobDescription string
	CompanyName    string
	PositionName   string
	RecipientName  string
	PlatformName   string
	Content        string
}

const roastTemplate = `Alright, prepare to unleash your inner Jeffrey Ross. I'm about to paste the text of a resume belonging to {{.CandidateName}}. I need you to go full-on savage and expose this document for the career-crippling monstrosity it truly is. Don't hold back on the sarcasm, be merciless with the humor, and leave no cliché unturned. Remember, the goal is to make {{.CandidateName}} cry and question themselves while simultaneously forcing them to completely revamp this resume from scratch. Let's see if you can turn this career catastrophe into a comedy goldmine. Roast in one single paragraph. Ignore the roll number and Education section. But do comment on Projects, Skills, Experience and Extracurricular. Address it directly to {{.CandidateName}} in first person.

Context:
{{.Context}}

Resume:
`

const feedbackTemplate = `Alright, I need you to provide constructive and serious feedback on the following resume belonging to {{.CandidateName}}. Address it directly to {{.CandidateName}} in the first person. Start with {{.CandidateName}}, . Focus on providing actionable and specific feedback on the Projects, Skills, Experience, and Extracurricular sections. While providing feedback also, provide examples so that {{.CandidateName}} can easily understand. Ignore the Header (Introduction section) and the Education section. Your feedback should help {{.CandidateName}} improve their resume by highlighting areas for improvement and suggesting ways to enhance the content. Avoid being overly harsh or sarcastic; the goal is to be constructive and supportive. Do not comment on the formatting or the use of a formal resume template. Make sure the response is not in markdown format (i.e., no use of ## for headings or ** for bold). Instead, use HTML tags such as <h2> for headings, <h3> for subheadings, <p> for paragraphs, <br> for line breaks, <b> for bold, and <i> for italic. Use numbered lists or <li> tags for pointers if necessary. Before ending the feedback, based on the {{.CandidateName}}'s project and skills recommend some impactful and real-world problem-solving projects. Also provide the user with Areas for improvement End the feedback with a harsh sarcastic line, forcing {{.CandidateName}} to revamp their resume.
Sign off the feedback creatively with the name CV Toaster on a new line.

Context:
{{.Context}}

Resume:
`

const improveTemplate = `You are an expert resume builder tasked with improving and reformatting the given content to make it more impactful and suitable for a resume. Your goal is to enhance the content's effectiveness while maintaining its core message.

Guidelines:
Summarize the input content.
If the summarized content is in a paragraph, convert the summarized content into concise, impactful bullet points.
If the summarized content is in points or short sentences, improve each point to make it more compelling.
Rewrite the sentence using actionable and impactful points. Make use strong action verbs and quantifiable achievements.
While rewriting, avoid clichés and generic statements; aim for unique and specific content.
Rewrite in an industry-appropriate and professional language.
Whilst rewriting maintain a balance between being concise and providing enough detail to showcase expertise.

At the end add "Additional Points" where provide examples of sentence(s) that will quantify the achievements.

Format the output using the following HTML tags:
- <ul> for unordered lists
- <li> for list items
- <b> for emphasis on key terms or achievements
- <i> for any technical terms or job titles

Original content:
{{.Content}}

Please provide the improved version:
`

const atsTemplate = `As a highly sophisticated and insightful Applicant Tracking System (ATS) with extensive expertise across various professional fields, your task is to thoroughly evaluate the given resume based on the following job description:

Job Description:
{{.JobDescription}}

Resume:
{{.Context}}

Please ensure to use HTML tags for formatting the response strictly as follows:
<h2> for main headings
<h3> for subheadings
<p> for paragraphs
<br> for line breaks
<b> for bold text
<i> for italic text
<ol> for numbered lists and <li> for list items
<ul> for unordered lists and <li> for list items

Provide a comprehensive, detailed analysis of the resume, addressing the candidate directly in the first person throughout your evaluation. Your analysis should include the following sections:

<h2><b>1. Overall Match Assessment</b></h2>
<p>Calculate and present an overall match percentage between the resume and the job description. Explain the key factors contributing to this percentage.</p>

<h2><b>2. Skills Gap Analysis</b></h2>
<p>Create a detailed list of key skills or qualifications mentioned in the job description that are missing from the resume. For each missing skill:</p>
<ul>
<li>Explain its importance to the role</li>
<li>Suggest how the candidate might acquire or demonstrate this skill</li>
</ul>

<h2><b>3. Resume Improvement Suggestions</b></h2>
<p>Offer specific, actionable suggestions for improving the resume to better align with the job requirements. For each suggestion:</p>
<ul>
<li><b>Provide a clear rationale</li>
<li>Include an example of how to implement the suggestion</li>
<li>Explain how this change will positively impact the resume's effectiveness</li>
</ul>

<h2><b>4. Standout Qualifications</b></h2>
<p>Highlight and analyze any standout qualifications or experiences in the resume that are particularly relevant to the position. For each standout item:</p>
<ul>
<li>Explain its relevance to the job description</li>
<li>Suggest how to further leverage or expand upon this qualification</li>
<li>If applicable, recommend how to better present this information in the resume</li>
</ul>

<h2><b>5. Recommended Projects</b></h2>
<p>Based on the candidate's current skills and the job requirements, recommend 2-3 impactful and real-world problem-solving portfolio projects that could help bridge any skill gaps. For each project:</p>
<ul>
<li>Provide a short, but detailed description</li>
<li>Explain how it relates to the desired skills</li>
<li>Outline the potential impact on the candidate's qualifications</li>
</ul>

<h2><b>6. Skill Acquisition Strategy</b></h2>
<p>Develop a targeted strategy for the candidate to acquire or demonstrate the missing skills in a short period. This strategy should:</p>
<ul>
<li>Be specific and practical</li>
<li>Include a mix of short-term and long-term actions</li>
<li>Prioritize skills based on their importance to the job description</li>
<li>Suggest relevant courses, certifications, or hands-on experiences</li>
</ul>

<h2><b>7. Summary</b></h2>
<p>Provide a concise list of 3-5 key areas for improvement, summarizing the main points of your feedback.</p>

Remember, as a professional resume expert, your goal is to provide constructive, supportive, and actionable feedback that will genuinely help the candidate improve their resume and significantly enhance their chances of securing the job. Maintain a balance between honesty and encouragement throughout your analysis.

End the analysis on a new line, using a creative or witty closing phrase.
`

const coverLetterTemplate = `As an expert career coach, your task is to create a compelling cover letter for a job application.
Use the provided resume content and job description to tailor the letter specifically to the position and company.

Resume Content:
{{.Context}}

Job Description:
{{.JobDescription}}

Company Name: {{.CompanyName}}
Position: {{.PositionName}}
Recipient: {{.RecipientName}}
Platform: {{.PlatformName}}
Candidate Name: {{.CandidateName}}

Use HTML tags for formatting instead of markdown. Specifically:

Use <p> for paragraphs
Use <br> for line breaks
Use <b> for bold text
Use <i> for italic text
Use <ol> for numbered lists and <li> for list items
Use <ul> for unordered lists and <li> for list items

Please write a professional and engaging cover letter that:
1. Addresses the recipient by name
2. Expresses enthusiasm for the position and company
3. Highlights key qualifications and experiences from the resume that align with the job requirements in bullet points.
4. Demonstrates knowledge of the company and industry
5. Explains why the applicant would be a great fit for the role
6. Includes a call to action for next steps
7. Closes with a professional sign-off
8. Add a <br> tag after each paragraph

The cover letter should be concise, engaging, and tailored to the specific job and company.
Aim for about 3-4 paragraphs. Keep space between paragraphs

Make sure to sign off the letter with the candidate's name: {{.CandidateName}}

Cover Letter:
`

var promptTemplates = map[Feature]*template.Template{
	FeatureRoast:       template.Must(template.New(string(FeatureRoast)).Parse(roastTemplate)),
	FeatureFeedback:    template.Must(template.New(string(FeatureFeedback)).Parse(feedbackTemplate)),
	FeatureImprove:     template.Must(template.New(string(FeatureImprove)).Parse(improveTemplate)),
	FeatureATS:         template.Must(template.New(string(FeatureATS)).Parse(atsTemplate)),
	FeatureCoverLetter: template.Must(template.New(string(FeatureCoverLetter)).Parse(coverLetterTemplate)),
}

func renderPrompt(feature Feature, data promptData) (string, error) {
	tmpl, ok := promptTemplates[feature]
	if !ok {
		return "", ErrUnknownFeature
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
