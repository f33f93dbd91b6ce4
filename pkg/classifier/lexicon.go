package classifier

// Sentiment word lists used by the offline classifier. A token counts toward
// the first list it matches, positive first.
var (
	positiveWords = []string{
		"good", "great", "excellent", "amazing", "wonderful", "helpful",
		"clear", "best", "love", "enjoy", "fantastic", "outstanding",
	}

	negativeWords = []string{
		"bad", "poor", "terrible", "awful", "worst", "hate",
		"confusing", "difficult", "unclear", "boring", "useless", "disappointing",
	}
)

// topicKeywords maps each fixed category to the keywords checked against the
// lowered feedback text. Matching is substring-based, so multi-word phrases
// are valid entries.
var topicKeywords = map[TopicLabel][]string{
	TopicTeachingStyle: {
		"teaching style", "teaching", "teacher", "professor", "instructor",
		"faculty", "explain", "explanation", "lecture", "presentation",
		"teach", "taught", "methodology", "pedagogy", "mentor", "tutor",
		"clarity", "understandable", "comprehension", "knowledgeable",
		"pace", "rushed", "step by step", "interactive", "engaging",
		"approachable", "patient", "enthusiastic", "passionate", "dedicated",
		"punctual", "handout", "slides", "ppt", "demonstration",
		"real world", "voice", "audible", "pronunciation", "body language",
		"eye contact", "energetic",
	},
	TopicCourseContent: {
		"course content", "content", "course", "syllabus", "curriculum",
		"topics", "subject", "lesson", "chapter", "unit", "module",
		"theory", "concept", "textbook", "reading", "relevant", "practical",
		"outdated", "updated", "comprehensive", "thorough", "superficial",
		"coverage", "depth", "breadth", "case study", "study material",
		"references", "bibliography", "workload", "fundamental", "advanced",
	},
	TopicInfrastructure: {
		"infrastructure", "facility", "facilities", "building", "campus",
		"classroom", "auditorium", "lecture hall", "seminar room",
		"lab", "laboratory", "workshop", "computer lab", "library",
		"projector", "screen", "smart board", "whiteboard", "blackboard",
		"computer", "laptop", "wifi", "wi-fi", "internet", "network",
		"furniture", "bench", "chair", "table", "desk", "seating",
		"air conditioning", "ventilation", "fan", "heater", "lighting",
		"electricity", "washroom", "restroom", "drinking water",
		"canteen", "cafeteria", "parking", "elevator", "staircase",
		"playground", "gym", "equipment", "maintenance", "broken",
		"spacious", "cramped", "crowded", "cctv",
	},
	TopicAssessmentMethods: {
		"assessment", "evaluation", "examination", "grading", "marking",
		"exam", "test", "quiz", "midterm", "mid term", "end term", "final",
		"assignment", "homework", "project", "viva", "oral",
		"question paper", "answer sheet", "mcq", "multiple choice",
		"grade", "marks", "score", "percentage", "gpa", "cgpa",
		"result", "pass", "fail", "unfair", "biased", "impartial",
		"weightage", "deadline", "due date", "submission", "retest",
		"supplementary", "plagiarism", "malpractice",
	},
	TopicClassroomEnvironment: {
		"classroom environment", "environment", "atmosphere", "ambience",
		"class size", "classmates", "peers", "batch", "section",
		"overcrowded", "packed", "discussion", "debate", "interaction",
		"participation", "engagement", "friendly", "welcoming", "hostile",
		"cooperative", "supportive", "respect", "disrespect", "rude",
		"discipline", "disorderly", "behavior", "behaviour", "bullying",
		"harassment", "ragging", "discrimination", "motivating",
		"distracted", "noise", "noisy", "quiet", "peaceful", "disturbance",
		"attendance", "stress", "pressure", "anxiety", "competitive",
		"seating arrangement", "stuffy", "fresh air",
	},
	TopicSupportServices: {
		"support services", "support", "guidance", "counseling",
		"counselling", "mentoring", "coaching", "advisor", "counselor",
		"office hours", "consultation", "doubt", "query", "clarification",
		"responsive", "unresponsive", "library services", "printing",
		"photocopy", "placement", "career", "internship", "campus drive",
		"skill development", "medical", "health", "clinic", "first aid",
		"hostel", "accommodation", "mess", "transport", "shuttle",
		"scholarship", "financial aid", "fee concession", "grievance",
		"complaint", "redressal", "administration", "admin office",
		"certificate", "transcript", "marksheet", "hall ticket",
		"student welfare", "alumni", "extra curricular",
	},
}
