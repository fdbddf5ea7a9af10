package exercises

// Template is an exercise definition copied into every new account.
type Template struct {
	Name        string
	Description string
	Difficulty  Difficulty
	Category    string
	Equipment   string
}

// CatalogVersion changes whenever DefaultCatalog does. Existing accounts keep
// the copies they were seeded with.
const CatalogVersion = 1

var DefaultCatalog = []Template{
	{
		Name:        "Push-up",
		Description: "Perform a high plank position and lower your body until your chest touches the floor. Push back up.",
		Difficulty:  Beginner,
		Category:    "Strength",
		Equipment:   "None",
	},
	{
		Name:        "Sit-up",
		Description: "Lie on your back, bend your knees and lift your torso towards your knees.",
		Difficulty:  Beginner,
		Category:    "Core",
		Equipment:   "None",
	},
	{
		Name:        "Pull-up",
		Description: "Hang from a bar with your hands shoulder-width apart and pull yourself up until your chin passes the bar.",
		Difficulty:  Intermediate,
		Category:    "Strength",
		Equipment:   "Pull-up Bar",
	},
	{
		Name:        "Squats",
		Description: "Stand with feet a little wider than shoulder-width apart, hips stacked over knees, and knees over ankles. Lower down as if sitting into a chair.",
		Difficulty:  Beginner,
		Category:    "Legs",
		Equipment:   "None",
	},
	{
		Name:        "Lunges",
		Description: "Step forward with one leg, lowering your hips until both knees are bent at about a 90-degree angle.",
		Difficulty:  Beginner,
		Category:    "Legs",
		Equipment:   "None",
	},
	{
		Name:        "Plank",
		Description: "Hold a push-up position, with your body weight borne on your arms, elbows, and toes. Maintain a straight back.",
		Difficulty:  Beginner,
		Category:    "Core",
		Equipment:   "None",
	},
	{
		Name:        "Burpees",
		Description: "Start in a standing position, drop into a squat with your hands on the ground, then kick your feet back while keeping your arms extended. Immediately return your feet to the squat position and jump up.",
		Difficulty:  Advanced,
		Category:    "Cardio",
		Equipment:   "None",
	},
	{
		Name:        "Deadlift",
		Description: "Bend and lift the weight with your legs while keeping your back straight.",
		Difficulty:  Intermediate,
		Category:    "Strength",
		Equipment:   "Barbell",
	},
	{
		Name:        "Bench Press",
		Description: "Lie back on a bench and push a weight away from your chest.",
		Difficulty:  Intermediate,
		Category:    "Strength",
		Equipment:   "Bench, Barbell",
	},
	{
		Name:        "Bicep Curl",
		Description: "Hold a weight in your hands and, with elbows fixed, curl the weight towards your shoulder.",
		Difficulty:  Beginner,
		Category:    "Arms",
		Equipment:   "Dumbbell",
	},
	{
		Name:        "Tricep Dip",
		Description: "On a chair or bench, support your body with your arms and lower yourself until your elbows are bent between 45 and 90 degrees. Extend your elbows to return to the starting position.",
		Difficulty:  Intermediate,
		Category:    "Arms",
		Equipment:   "Chair or Bench",
	},
}
