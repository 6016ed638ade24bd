package scenario

// catalog is the built-in lesson set: three scenarios per category.
var catalog = []Scenario{
	{
		ID:               "travel-airport",
		Category:         "travel",
		Title:            "At the Airport",
		Description:      "Practice checking in, going through security, and boarding your flight.",
		Difficulty:       "beginner",
		EstimatedMinutes: 10,
		VocabularyFocus:  []string{"boarding pass", "gate", "luggage", "security", "delayed"},
		Steps: []Step{
			{ID: 1,
				Instruction:     "Greet the check-in agent and say you have a flight to London.",
				AIPrompt:        "You are a friendly airline check-in agent. Greet the passenger warmly and ask for their passport and booking reference.",
				SuccessCriteria: "Student mentions destination and asks to check in"},
			{ID: 2,
				Instruction:     "The agent asks about luggage. Tell them you have one suitcase to check and one carry-on.",
				AIPrompt:        "Ask about luggage - how many bags to check and any carry-on items. Mention the weight limit is 23 kilograms.",
				SuccessCriteria: "Student describes their luggage"},
			{ID: 3,
				Instruction:     "Ask the agent which gate your flight departs from.",
				AIPrompt:        "Hand over the boarding pass and tell them the flight leaves from Gate 42. Boarding starts at 2:30 PM. Wish them a good flight.",
				SuccessCriteria: "Student asks about gate"},
			{ID: 4,
				Instruction:     "At security, the officer asks you to remove items. Respond appropriately.",
				AIPrompt:        "You are a security officer. Ask the passenger to remove their laptop from their bag, take out any liquids, and remove their belt and jacket.",
				SuccessCriteria: "Student acknowledges and responds to security instructions"},
			{ID: 5,
				Instruction:     "You hear an announcement that your flight is delayed. Ask an airport staff member for more information.",
				AIPrompt:        "Announce that the flight to London is delayed by 45 minutes. Apologize for the inconvenience and offer a voucher for free coffee at the airport cafe.",
				SuccessCriteria: "Student asks about delay and responds to offer"},
		},
	},
	{
		ID:               "travel-hotel",
		Category:         "travel",
		Title:            "Checking into a Hotel",
		Description:      "Learn to check in, ask about amenities, and handle room issues.",
		Difficulty:       "beginner",
		EstimatedMinutes: 8,
		VocabularyFocus:  []string{"reservation", "room key", "checkout", "amenities", "reception"},
		Steps: []Step{
			{ID: 1,
				Instruction:     "Approach the reception desk and say you have a reservation.",
				AIPrompt:        "You are a hotel receptionist. Greet the guest warmly and ask for their name and confirmation number.",
				SuccessCriteria: "Student mentions having a reservation"},
			{ID: 2,
				Instruction:     "Confirm your booking details when asked.",
				AIPrompt:        "Ask the guest to confirm: 3 nights, double room, breakfast included. Ask if this is correct.",
				SuccessCriteria: "Student confirms or corrects the booking details"},
			{ID: 3,
				Instruction:     "Ask what time breakfast is served and where the restaurant is.",
				AIPrompt:        "Provide the room key for room 305 on the third floor. Wait for the guest to ask questions about the hotel.",
				SuccessCriteria: "Student asks about breakfast or hotel facilities"},
			{ID: 4,
				Instruction:     "Call reception and report that the air conditioning is not working in your room.",
				AIPrompt:        "Answer the phone as the reception. Listen to the complaint and apologize. Offer to send maintenance right away or offer a room change.",
				SuccessCriteria: "Student reports the problem clearly"},
		},
	},
	{
		ID:               "travel-restaurant",
		Category:         "travel",
		Title:            "Ordering at a Restaurant",
		Description:      "Practice ordering food, asking about the menu, and paying the bill.",
		Difficulty:       "beginner",
		EstimatedMinutes: 10,
		VocabularyFocus:  []string{"menu", "waiter", "bill", "tip", "reservation", "vegetarian"},
		Steps: []Step{
			{ID: 1,
				Instruction:     "Tell the host you have a reservation for two people.",
				AIPrompt:        "You are a restaurant host. Greet the guests and ask for the name on the reservation.",
				SuccessCriteria: "Student mentions reservation and number of people"},
			{ID: 2,
				Instruction:     "Ask the waiter what the special of the day is.",
				AIPrompt:        "You are the waiter. Present menus and wait for questions. The special today is grilled salmon with vegetables.",
				SuccessCriteria: "Student asks about specials or menu items"},
			{ID: 3,
				Instruction:     "Order your food. Get a starter, main course, and drink.",
				AIPrompt:        "Take the order. Repeat it back to confirm. Ask how they would like their steak cooked if they order one.",
				SuccessCriteria: "Student orders at least two items"},
			{ID: 4,
				Instruction:     "Tell the waiter you have a food allergy and ask if the dish contains nuts.",
				AIPrompt:        "Respond to the allergy concern seriously. Confirm the dish does not contain nuts but is prepared in a kitchen that handles nuts. Offer alternatives.",
				SuccessCriteria: "Student asks about allergies or ingredients"},
			{ID: 5,
				Instruction:     "Ask for the bill and ask if service is included.",
				AIPrompt:        "Bring the bill. It is 45 pounds total. Service is not included. Accept payment by card or cash.",
				SuccessCriteria: "Student asks for bill and about service/tipping"},
		},
	},
	{
		ID:               "roleplay-job-interview",
		Category:         "roleplay",
		Title:            "Job Interview",
		Description:      "Practice introducing yourself, answering questions, and asking about the role.",
		Difficulty:       "intermediate",
		EstimatedMinutes: 12,
		VocabularyFocus:  []string{"experience", "qualifications", "strengths", "salary", "responsibilities"},
		Steps: []Step{
			{ID: 1,
				Instruction:     "Greet the interviewer and introduce yourself briefly.",
				AIPrompt:        "You are an interviewer for a marketing position. Greet the candidate, shake hands, and ask them to have a seat. Start with: Tell me a little about yourself.",
				SuccessCriteria: "Student introduces themselves professionally"},
			{ID: 2,
				Instruction:     "The interviewer asks about your experience. Describe your previous work.",
				AIPrompt:        "Ask: What relevant experience do you have for this marketing role? Listen and ask a follow-up question about a specific project.",
				SuccessCriteria: "Student describes work experience"},
			{ID: 3,
				Instruction:     "Answer when asked about your biggest strength and one area you want to improve.",
				AIPrompt:        "Ask: What would you say is your biggest strength? And what is one area you are working to improve?",
				SuccessCriteria: "Student provides strength and area for improvement"},
			{ID: 4,
				Instruction:     "Ask the interviewer about the team you would be working with.",
				AIPrompt:        "Wait for the candidate to ask questions. The team has 5 people, works hybrid with 3 days in office, and the role reports to the Marketing Director.",
				SuccessCriteria: "Student asks relevant questions about the role"},
			{ID: 5,
				Instruction:     "Thank the interviewer and ask about the next steps in the process.",
				AIPrompt:        "Explain that you will contact candidates within a week. Thank them for their time and escort them out.",
				SuccessCriteria: "Student thanks interviewer and asks about timeline"},
		},
	},
	{
		ID:               "roleplay-doctor",
		Category:         "roleplay",
		Title:            "Doctor's Appointment",
		Description:      "Learn to describe symptoms, understand diagnosis, and ask about treatment.",
		Difficulty:       "intermediate",
		EstimatedMinutes: 10,
		VocabularyFocus:  []string{"symptoms", "prescription", "appointment", "diagnosis", "pharmacy"},
		Steps: []Step{
			{ID: 1,
				Instruction:     "Tell the doctor why you made this appointment.",
				AIPrompt:        "You are a friendly doctor. Greet the patient and ask: What brings you in today? What symptoms are you experiencing?",
				SuccessCriteria: "Student describes their reason for visit"},
			{ID: 2,
				Instruction:     "Describe your symptoms in detail - when they started and how severe they are.",
				AIPrompt:        "Ask follow-up questions: How long have you had these symptoms? Are they constant or do they come and go? Rate the pain from 1 to 10.",
				SuccessCriteria: "Student provides details about symptoms"},
			{ID: 3,
				Instruction:     "Answer questions about your medical history.",
				AIPrompt:        "Ask: Do you have any allergies to medications? Are you currently taking any other medicines? Have you had this problem before?",
				SuccessCriteria: "Student responds to medical history questions"},
			{ID: 4,
				Instruction:     "The doctor gives a diagnosis. Ask questions about it.",
				AIPrompt:        "Diagnose a mild throat infection. Explain it is not serious but needs antibiotics. Prescribe medication for 7 days. Wait for patient questions.",
				SuccessCriteria: "Student asks about diagnosis or treatment"},
			{ID: 5,
				Instruction:     "Ask about how to take the medicine and any side effects.",
				AIPrompt:        "Explain: Take one pill twice a day with food. Side effects may include mild stomach upset. Rest and drink plenty of fluids. Come back if symptoms worsen.",
				SuccessCriteria: "Student asks about medication instructions"},
		},
	},
	{
		ID:               "roleplay-customer-service",
		Category:         "roleplay",
		Title:            "Phone Call to Customer Service",
		Description:      "Practice explaining a problem and negotiating a solution on the phone.",
		Difficulty:       "intermediate",
		EstimatedMinutes: 10,
		VocabularyFocus:  []string{"complaint", "refund", "manager", "reference number", "policy"},
		Steps: []Step{
			{ID: 1,
				Instruction:     "Explain that you received a damaged product and want to report it.",
				AIPrompt:        "You are a customer service agent. Answer: Thank you for calling. How may I help you today? Ask for the order number.",
				SuccessCriteria: "Student explains the problem"},
			{ID: 2,
				Instruction:     "Provide your order details when asked.",
				AIPrompt:        "Ask for the order number and the customer's email address to look up the order. Confirm you found it.",
				SuccessCriteria: "Student provides order information"},
			{ID: 3,
				Instruction:     "Describe what is wrong with the product.",
				AIPrompt:        "Ask: Can you describe the damage? When did you receive the item? Did you notice the damage when you opened it?",
				SuccessCriteria: "Student describes the damage"},
			{ID: 4,
				Instruction:     "The agent offers a replacement. Ask if you can get a refund instead.",
				AIPrompt:        "Apologize for the inconvenience. Offer to send a replacement product within 3 to 5 business days. Wait for the customer's response.",
				SuccessCriteria: "Student requests alternative solution"},
			{ID: 5,
				Instruction:     "Accept the solution and ask for a confirmation email.",
				AIPrompt:        "Agree to process the refund. It will take 5 to 7 business days to appear. Ask if you can help with anything else and provide a reference number.",
				SuccessCriteria: "Student confirms and asks for confirmation"},
		},
	},
	{
		ID:               "conversation-meeting-someone",
		Category:         "conversation",
		Title:            "Meeting Someone New",
		Description:      "Practice small talk, talking about yourself, and asking questions.",
		Difficulty:       "beginner",
		EstimatedMinutes: 8,
		VocabularyFocus:  []string{"hobbies", "occupation", "hometown", "interests", "nice to meet you"},
		Steps: []Step{
			{ID: 1,
				Instruction:     "Introduce yourself to someone you just met at a party.",
				AIPrompt:        "You are a friendly person at a party. Introduce yourself as Alex and say it is nice to meet them. Ask where they are from.",
				SuccessCriteria: "Student introduces themselves"},
			{ID: 2,
				Instruction:     "Tell them where you are from and ask what they do for work.",
				AIPrompt:        "Show interest in their hometown. Share that you work in software development. Ask what they do for a living.",
				SuccessCriteria: "Student shares origin and asks about work"},
			{ID: 3,
				Instruction:     "Share what you do for work and ask about their hobbies.",
				AIPrompt:        "React positively to their job. Mention your hobbies include hiking and photography. Ask what they like to do in their free time.",
				SuccessCriteria: "Student talks about work and asks about hobbies"},
			{ID: 4,
				Instruction:     "Talk about a hobby you enjoy and find something in common.",
				AIPrompt:        "If they mention a similar interest, show enthusiasm. If different, ask questions to learn more. Look for common ground.",
				SuccessCriteria: "Student discusses hobbies and engages"},
			{ID: 5,
				Instruction:     "Say you enjoyed talking and suggest keeping in touch.",
				AIPrompt:        "Agree it was a great conversation. Suggest exchanging contact information. Say you hope to see them again soon.",
				SuccessCriteria: "Student wraps up conversation politely"},
		},
	},
	{
		ID:               "conversation-weekend",
		Category:         "conversation",
		Title:            "Talking About Your Weekend",
		Description:      "Practice using past tense to describe recent activities.",
		Difficulty:       "beginner",
		EstimatedMinutes: 8,
		VocabularyFocus:  []string{"went", "saw", "enjoyed", "relaxed", "spent time"},
		Steps: []Step{
			{ID: 1,
				Instruction:     "A colleague asks how your weekend was. Tell them about one thing you did.",
				AIPrompt:        "You are a friendly colleague on Monday morning. Ask: How was your weekend? Did you do anything fun?",
				SuccessCriteria: "Student uses past tense to describe weekend"},
			{ID: 2,
				Instruction:     "Give more details about the activity you mentioned.",
				AIPrompt:        "Show interest and ask follow-up questions: Who did you go with? How was it? Would you recommend it?",
				SuccessCriteria: "Student provides more details in past tense"},
			{ID: 3,
				Instruction:     "Ask your colleague about their weekend.",
				AIPrompt:        "Wait for them to ask about your weekend. Share that you went to a new restaurant on Saturday and relaxed at home on Sunday.",
				SuccessCriteria: "Student asks about colleague's weekend"},
			{ID: 4,
				Instruction:     "React to what they did and ask a follow-up question.",
				AIPrompt:        "Answer their follow-up questions about the restaurant. It was Italian food and very good but a bit expensive.",
				SuccessCriteria: "Student reacts and asks questions"},
		},
	},
	{
		ID:               "conversation-making-plans",
		Category:         "conversation",
		Title:            "Making Plans with a Friend",
		Description:      "Practice using future tense and making suggestions.",
		Difficulty:       "beginner",
		EstimatedMinutes: 8,
		VocabularyFocus:  []string{"would you like to", "how about", "shall we", "sounds good", "available"},
		Steps: []Step{
			{ID: 1,
				Instruction:     "Ask your friend if they are free this weekend.",
				AIPrompt:        "You are a friend. Say you are free on Saturday but busy on Sunday. Ask what they have in mind.",
				SuccessCriteria: "Student asks about availability"},
			{ID: 2,
				Instruction:     "Suggest an activity you could do together.",
				AIPrompt:        "React to their suggestion. If it sounds fun, agree enthusiastically. If not, suggest an alternative like going to the cinema or trying a new cafe.",
				SuccessCriteria: "Student makes a suggestion"},
			{ID: 3,
				Instruction:     "Discuss and agree on the time and place to meet.",
				AIPrompt:        "Suggest meeting at 2 PM at the main entrance. Ask if that works for them or if another time is better.",
				SuccessCriteria: "Student negotiates time and place"},
			{ID: 4,
				Instruction:     "Confirm the plans and say you are looking forward to it.",
				AIPrompt:        "Confirm the plan. Say you are excited and will see them on Saturday. Suggest texting on Friday to confirm.",
				SuccessCriteria: "Student confirms and expresses enthusiasm"},
		},
	},
	{
		ID:               "quiz-irregular-verbs",
		Category:         "quiz",
		Title:            "Irregular Verbs Challenge",
		Description:      "Test your knowledge of common irregular verbs in past tense.",
		Difficulty:       "beginner",
		EstimatedMinutes: 8,
		VocabularyFocus:  []string{"went", "saw", "took", "made", "gave", "bought", "thought", "brought"},
		Steps: []Step{
			{ID: 1,
				Instruction:     "Answer: What is the past tense of GO?",
				AIPrompt:        "Start the quiz. Ask: What is the past tense of GO? Wait for answer. Correct answer is WENT.",
				SuccessCriteria: "Student answers with 'went'"},
			{ID: 2,
				Instruction:     "Answer: What is the past tense of SEE?",
				AIPrompt:        "Give feedback on previous answer. Ask: What is the past tense of SEE? Correct answer is SAW.",
				SuccessCriteria: "Student answers with 'saw'"},
			{ID: 3,
				Instruction:     "Answer: What is the past tense of TAKE?",
				AIPrompt:        "Give feedback. Ask: What is the past tense of TAKE? Correct answer is TOOK.",
				SuccessCriteria: "Student answers with 'took'"},
			{ID: 4,
				Instruction:     "Make a sentence using the past tense of BUY.",
				AIPrompt:        "Change format. Say: Now make a sentence using the past tense of BUY (bought). Give an example if they struggle.",
				SuccessCriteria: "Student uses 'bought' in a sentence"},
			{ID: 5,
				Instruction:     "Make a sentence using the past tense of THINK.",
				AIPrompt:        "Give feedback. Ask for a sentence using the past tense of THINK (thought). Congratulate them on completing the quiz.",
				SuccessCriteria: "Student uses 'thought' in a sentence"},
		},
	},
	{
		ID:               "quiz-prepositions",
		Category:         "quiz",
		Title:            "Prepositions Master",
		Description:      "Practice using IN, ON, and AT correctly with time and place.",
		Difficulty:       "intermediate",
		EstimatedMinutes: 8,
		VocabularyFocus:  []string{"in", "on", "at", "time expressions", "place expressions"},
		Steps: []Step{
			{ID: 1,
				Instruction:     "Fill the blank: I wake up ___ 7 AM every day.",
				AIPrompt:        "Start the preposition quiz. Ask them to fill in: I wake up ___ 7 AM every day. Correct answer is AT (specific time).",
				SuccessCriteria: "Student answers 'at'"},
			{ID: 2,
				Instruction:     "Fill the blank: My birthday is ___ March.",
				AIPrompt:        "Give feedback. New question: My birthday is ___ March. Correct answer is IN (month).",
				SuccessCriteria: "Student answers 'in'"},
			{ID: 3,
				Instruction:     "Fill the blank: The meeting is ___ Monday.",
				AIPrompt:        "Give feedback. New question: The meeting is ___ Monday. Correct answer is ON (day of week).",
				SuccessCriteria: "Student answers 'on'"},
			{ID: 4,
				Instruction:     "Fill the blank: I live ___ Paris. I work ___ an office ___ the city center.",
				AIPrompt:        "Multiple blanks: I live ___ Paris. I work ___ an office ___ the city center. Answers: IN Paris, IN an office, IN the city center.",
				SuccessCriteria: "Student answers 'in' for all three"},
			{ID: 5,
				Instruction:     "Create your own sentence using AT, IN, and ON correctly.",
				AIPrompt:        "Final challenge: Create a sentence (or sentences) that uses AT, IN, and ON correctly. Give feedback on their creation.",
				SuccessCriteria: "Student creates correct sentences"},
		},
	},
	{
		ID:               "quiz-vocabulary",
		Category:         "quiz",
		Title:            "Vocabulary Expansion",
		Description:      "Learn synonyms and antonyms to expand your vocabulary.",
		Difficulty:       "intermediate",
		EstimatedMinutes: 10,
		VocabularyFocus:  []string{"synonyms", "antonyms", "adjectives", "descriptive words"},
		Steps: []Step{
			{ID: 1,
				Instruction:     "Give a synonym for HAPPY (a word with similar meaning).",
				AIPrompt:        "Start vocabulary quiz. Ask for a synonym of HAPPY. Accept: glad, joyful, pleased, cheerful, delighted.",
				SuccessCriteria: "Student provides a valid synonym"},
			{ID: 2,
				Instruction:     "Give an antonym for BIG (a word with opposite meaning).",
				AIPrompt:        "Good job! Now the opposite: Give an antonym for BIG. Accept: small, tiny, little, miniature.",
				SuccessCriteria: "Student provides a valid antonym"},
			{ID: 3,
				Instruction:     "Replace VERY GOOD with a single, stronger word.",
				AIPrompt:        "Level up! Replace VERY GOOD with one word. Accept: excellent, fantastic, wonderful, amazing, superb, outstanding.",
				SuccessCriteria: "Student provides a strong adjective"},
			{ID: 4,
				Instruction:     "Replace VERY BAD with a single, stronger word.",
				AIPrompt:        "Great! Now replace VERY BAD with one word. Accept: terrible, awful, horrible, dreadful, appalling.",
				SuccessCriteria: "Student provides a strong negative adjective"},
			{ID: 5,
				Instruction:     "Use three different words to describe a positive experience you had recently.",
				AIPrompt:        "Final challenge: Describe a positive experience using at least three different descriptive words. Encourage variety and give feedback.",
				SuccessCriteria: "Student uses varied vocabulary"},
		},
	},
}
