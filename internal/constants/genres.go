package constants

// Genres maps genre names to TMDB movie genre ids. Read-only after init.
var Genres = map[string]int{
	"Action":          28,
	"Adventure":       12,
	"Animation":       16,
	"Comedy":          35,
	"Crime":           80,
	"Documentary":     99,
	"Drama":           18,
	"Family":          10751,
	"Fantasy":         14,
	"Horror":          27,
	"Musical":         10402,
	"Mystery":         9648,
	"Romance":         10749,
	"Science Fiction": 878,
	"Thriller":        53,
	"War":             10752,
}

// GenreIDs lists the catalog ids in a stable order so random sampling is reproducible
// under a seeded source.
var GenreIDs = []int{28, 12, 16, 35, 80, 99, 18, 10751, 14, 27, 10402, 9648, 10749, 878, 53, 10752}

// genreNames is the reverse lookup of Genres.
var genreNames = func() map[int]string {
	m := make(map[int]string, len(Genres))
	for name, id := range Genres {
		m[id] = name
	}
	return m
}()

// GenreName returns the catalog name for a TMDB genre id.
func GenreName(id int) (string, bool) {
	name, ok := genreNames[id]
	return name, ok
}

// DiverseGenreSets are genre triples picked to be very different from each other.
var DiverseGenreSets = [][3]string{
	{"Action", "Drama", "Animation"},
	{"Comedy", "Horror", "Science Fiction"},
	{"Romance", "Thriller", "Fantasy"},
	{"Mystery", "Family", "War"},
	{"Adventure", "Crime", "Musical"},
}
