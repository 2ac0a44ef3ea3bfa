package bombmaze

// Maze is a hand-authored level layout.
// '#' is a wall, '.' is open floor, 'S' marks the player start and
// 'E' the exit. Both markers are open floor.
type Maze struct {
	ID     string
	Title  string
	Layout []string
}

// Mazes lists the built-in levels in menu order.
var Mazes = []Maze{
	{
		ID:    "classic",
		Title: "Bomb Maze: Classic",
		Layout: []string{
			"####################",
			"#S....#............#",
			"#.###.#.#######.##.#",
			"#.#...#.......#.#..#",
			"#.#.######.##.#.#.##",
			"#.#........#..#.#..#",
			"#.#####.####.##.##.#",
			"#.......#..........#",
			"#######.#.########.#",
			"#.....#.#........#.#",
			"#.###.#.########.#.#",
			"#.#...#........#...#",
			"#.#.##########.#####",
			"#.................E#",
			"####################",
		},
	},
	{
		ID:    "crossroads",
		Title: "Bomb Maze: Crossroads",
		Layout: []string{
			"####################",
			"#S.......#.........#",
			"#.######.#.######..#",
			"#.#....#...#....#..#",
			"#.#.##.#####.##.#..#",
			"#...#..........#...#",
			"###.#.###..###.#.###",
			"#.........##.......#",
			"###.#.###..###.#.###",
			"#...#..........#...#",
			"#.#.##.#####.##.#..#",
			"#.#....#...#....#..#",
			"#.######.#.######..#",
			"#........#........E#",
			"####################",
		},
	},
	{
		ID:    "gallery",
		Title: "Bomb Maze: Gallery",
		Layout: []string{
			"####################",
			"#S.................#",
			"#.##.##.##.##.##.#.#",
			"#..................#",
			"#.#.#.#.#.#.#.#.#..#",
			"#..................#",
			"#.##.##.##.##.##.#.#",
			"#..................#",
			"#.#.#.#.#.#.#.#.#..#",
			"#..................#",
			"#.##.##.##.##.##.#.#",
			"#..................#",
			"#.#.#.#.#.#.#.#.#..#",
			"#.................E#",
			"####################",
		},
	},
}

// FindMaze returns the maze with the given ID.
func FindMaze(id string) (Maze, bool) {
	for _, m := range Mazes {
		if m.ID == id {
			return m, true
		}
	}
	return Maze{}, false
}
