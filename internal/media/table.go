package media

// table is the static exercise media catalog, keyed by normalized name.
// Order is significant: substring and token matching return the first hit
// in declaration order.
var table = []Entry{
	{key: "push up", CanonicalName: "Push-Up",
		VideoURL:     "https://cdn.pulseplan.app/exercises/push-up.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/push-up.jpg"},
	{key: "squat", CanonicalName: "Bodyweight Squat",
		VideoURL:     "https://cdn.pulseplan.app/exercises/squat.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/squat.jpg"},
	{key: "supino reto", CanonicalName: "Barbell Bench Press",
		VideoURL:     "https://cdn.pulseplan.app/exercises/bench-press.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/bench-press.jpg"},
	{key: "bench press", CanonicalName: "Barbell Bench Press",
		VideoURL:     "https://cdn.pulseplan.app/exercises/bench-press.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/bench-press.jpg"},
	{key: "deadlift", CanonicalName: "Deadlift",
		VideoURL:     "https://cdn.pulseplan.app/exercises/deadlift.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/deadlift.jpg"},
	{key: "seated shoulder press", CanonicalName: "Seated Shoulder Press",
		VideoURL:     "https://cdn.pulseplan.app/exercises/seated-shoulder-press.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/seated-shoulder-press.jpg"},
	{key: "overhead press", CanonicalName: "Overhead Press",
		VideoURL:     "https://cdn.pulseplan.app/exercises/overhead-press.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/overhead-press.jpg"},
	{key: "lat pulldown", CanonicalName: "Lat Pulldown",
		VideoURL:     "https://cdn.pulseplan.app/exercises/lat-pulldown.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/lat-pulldown.jpg"},
	{key: "barbell row", CanonicalName: "Barbell Row",
		VideoURL:     "https://cdn.pulseplan.app/exercises/barbell-row.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/barbell-row.jpg"},
	{key: "bicep curl", CanonicalName: "Bicep Curl",
		VideoURL:     "https://cdn.pulseplan.app/exercises/bicep-curl.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/bicep-curl.jpg"},
	{key: "tricep dip", CanonicalName: "Tricep Dip",
		VideoURL:     "https://cdn.pulseplan.app/exercises/tricep-dip.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/tricep-dip.jpg"},
	{key: "plank", CanonicalName: "Plank",
		VideoURL:     "https://cdn.pulseplan.app/exercises/plank.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/plank.jpg"},
	{key: "lunge", CanonicalName: "Forward Lunge",
		VideoURL:     "https://cdn.pulseplan.app/exercises/lunge.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/lunge.jpg"},
	{key: "leg press", CanonicalName: "Leg Press",
		VideoURL:     "https://cdn.pulseplan.app/exercises/leg-press.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/leg-press.jpg"},
	{key: "romanian deadlift", CanonicalName: "Romanian Deadlift",
		VideoURL:     "https://cdn.pulseplan.app/exercises/romanian-deadlift.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/romanian-deadlift.jpg"},
	{key: "mountain climber", CanonicalName: "Mountain Climber",
		VideoURL:     "https://cdn.pulseplan.app/exercises/mountain-climber.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/mountain-climber.jpg"},
	{key: "burpee", CanonicalName: "Burpee",
		VideoURL:     "https://cdn.pulseplan.app/exercises/burpee.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/burpee.jpg"},
	{key: "jumping jack", CanonicalName: "Jumping Jack",
		VideoURL:     "https://cdn.pulseplan.app/exercises/jumping-jack.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/jumping-jack.jpg"},
	{key: "glute bridge", CanonicalName: "Glute Bridge",
		VideoURL:     "https://cdn.pulseplan.app/exercises/glute-bridge.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/glute-bridge.jpg"},
	{key: "russian twist", CanonicalName: "Russian Twist",
		VideoURL:     "https://cdn.pulseplan.app/exercises/russian-twist.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/russian-twist.jpg"},
	{key: "pull up", CanonicalName: "Pull-Up",
		VideoURL:     "https://cdn.pulseplan.app/exercises/pull-up.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/pull-up.jpg"},
	{key: "leg raise", CanonicalName: "Hanging Leg Raise",
		VideoURL:     "https://cdn.pulseplan.app/exercises/leg-raise.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/leg-raise.jpg"},
	{key: "calf raise", CanonicalName: "Standing Calf Raise",
		VideoURL:     "https://cdn.pulseplan.app/exercises/calf-raise.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/calf-raise.jpg"},
	{key: "lateral raise", CanonicalName: "Dumbbell Lateral Raise",
		VideoURL:     "https://cdn.pulseplan.app/exercises/lateral-raise.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/lateral-raise.jpg"},
	{key: "crunch", CanonicalName: "Crunch",
		VideoURL:     "https://cdn.pulseplan.app/exercises/crunch.mp4",
		ThumbnailURL: "https://cdn.pulseplan.app/exercises/crunch.jpg"},
}

// tableIndex provides O(1) exact-key lookup over the same entries.
var tableIndex = func() map[string]*Entry {
	idx := make(map[string]*Entry, len(table))
	for i := range table {
		idx[table[i].key] = &table[i]
	}
	return idx
}()
