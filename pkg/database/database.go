package database

import (
	"fmt"
	"inclusive_edu_backend/internal/config"
	"inclusive_edu_backend/internal/model"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Student{},
		&model.SubjectTrack{},
		&model.Lesson{},
		&model.Question{},
		&model.Alert{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := seedCatalogue(db); err != nil {
		return nil, err
	}

	return db, nil
}

type questionSeed struct {
	text    string
	options []string
	correct int
}

type lessonSeed struct {
	subject   model.Subject
	level     string
	title     string
	topic     string
	hasAudio  bool
	hasVideo  bool
	questions []questionSeed // 该课的主题测验
}

// 课程目录与主题测验，按目录顺序即解锁顺序
var lessonSeeds = []lessonSeed{
	{model.SubjectMaths, "Class 1", "Addition", "Addition", true, true, []questionSeed{
		{"5 + 3 = ?", []string{"8", "53", "9", "7"}, 0},
		{"2 + 6 = ?", []string{"6", "8", "12", "4"}, 1},
		{"4 + 7 = ?", []string{"11", "47", "10", "12"}, 0},
		{"1 + 9 = ?", []string{"10", "19", "11", "9"}, 0},
		{"3 + 5 = ?", []string{"8", "35", "7", "9"}, 0},
	}},
	{model.SubjectMaths, "Class 1", "Subtraction", "Subtraction", true, true, []questionSeed{
		{"8 - 3 = ?", []string{"5", "11", "6", "4"}, 0},
		{"10 - 4 = ?", []string{"14", "6", "5", "7"}, 1},
		{"5 - 5 = ?", []string{"5", "1", "10", "0"}, 3},
		{"7 - 2 = ?", []string{"9", "5", "4", "6"}, 1},
		{"9 - 1 = ?", []string{"10", "7", "8", "9"}, 2},
	}},
	{model.SubjectScience, "Class 1", "Good Habits", "Good Habits", true, true, []questionSeed{
		{"When should we wash hands?", []string{"Before eating", "After sleeping", "Never", "Only on Sundays"}, 0},
		{"Which is a bad habit?", []string{"Sharing toys", "Biting nails", "Helping others", "Waking up early"}, 1},
		{"Should we cover our mouth while sneezing?", []string{"Yes", "No"}, 0},
		{"Which is good for health?", []string{"Eating junk food", "Eating fruits", "Drinking soda", "Watching TV all day"}, 1},
		{"How many times should we brush daily?", []string{"Once", "Twice", "Zero", "Five times"}, 1},
	}},
	{model.SubjectMaths, "Class 2", "Multiplication", "Multiplication", true, true, []questionSeed{
		{"6 × 7 = ?", []string{"42", "13", "67", "36"}, 0},
		{"5 × 8 = ?", []string{"40", "13", "58", "35"}, 0},
		{"4 × 9 = ?", []string{"36", "49", "45", "34"}, 0},
		{"3 × 7 = ?", []string{"21", "37", "17", "24"}, 0},
		{"8 × 6 = ?", []string{"48", "86", "14", "56"}, 0},
	}},
	{model.SubjectScience, "Class 2", "Water Cycle", "Water Cycle", true, true, []questionSeed{
		{"Water turning into gas is?", []string{"Evaporation", "Freezing", "Rain", "Melting"}, 0},
		{"Clouds are made of tiny water droplets. This is?", []string{"Condensation", "Heating", "Drying", "Flowing"}, 0},
		{"Rain falling from clouds is?", []string{"Precipitation", "Swimming", "Wind", "Shining"}, 0},
		{"What provides heat for the water cycle?", []string{"Moon", "Sun", "Stars", "Wind"}, 1},
		{"Where does most water evaporate from?", []string{"Mountains", "Oceans", "Deserts", "Forests"}, 1},
	}},
	{model.SubjectMaths, "Class 3", "Fractions", "Fractions", true, true, []questionSeed{
		{"What is 1/2 of 12?", []string{"6", "4", "2", "8"}, 0},
		{"In 3/4, which is the denominator?", []string{"3", "4", "7", "1"}, 1},
		{"Which fraction is the largest?", []string{"1/4", "2/4", "3/4", "4/4"}, 3},
		{"If you cut a pizza into 4 equal slices, 1 slice is?", []string{"1/2", "1/4", "1/3", "4/1"}, 1},
		{"What is 1/3 of 9?", []string{"3", "1", "6", "9"}, 0},
	}},
	{model.SubjectScience, "Class 3", "Living and Non-Living", "Living and Non-Living", true, true, []questionSeed{
		{"Which of these can grow?", []string{"Car", "Plant", "Table", "Fan"}, 1},
		{"Living things need what to breathe?", []string{"Air", "Food", "Water", "Light"}, 0},
		{"Which is a non-living thing?", []string{"Dog", "Robot", "Tree", "Fish"}, 1},
		{"Living things can produce babies. This is?", []string{"Eating", "Reproduction", "Sleeping", "Walking"}, 1},
		{"Do non-living things need food?", []string{"Yes", "No"}, 1},
	}},
}

type placementSeed struct {
	subject model.Subject
	level   string
	q       questionSeed
}

// 安置诊断题：每科每班一题，从低到高出题
var placementSeeds = []placementSeed{
	{model.SubjectMaths, "Class 1", questionSeed{"4 birds + 2 birds = ?", []string{"6", "42", "2", "8"}, 0}},
	{model.SubjectMaths, "Class 2", questionSeed{"3 × 4 = ?", []string{"7", "12", "34", "9"}, 1}},
	{model.SubjectMaths, "Class 3", questionSeed{"What is 1/2 of 10?", []string{"5", "2", "10", "20"}, 0}},
	{model.SubjectScience, "Class 1", questionSeed{"Which animal can fly?", []string{"Dog", "Cat", "Bird", "Elephant"}, 2}},
	{model.SubjectScience, "Class 2", questionSeed{"Which process turns water into vapor?", []string{"Evaporation", "Condensation", "Precipitation", "Freezing"}, 0}},
	{model.SubjectScience, "Class 3", questionSeed{"Which of these is a living thing?", []string{"Rock", "Tree", "Chair", "Pen"}, 1}},
}

type finalSeed struct {
	subject   model.Subject
	level     string
	questions []questionSeed
}

// 期末试卷：通过后才升班
var finalSeeds = []finalSeed{
	{model.SubjectMaths, "Class 1", []questionSeed{
		{"7 + 8 = ?", []string{"15", "78", "14", "16"}, 0},
		{"12 - 5 = ?", []string{"7", "8", "17", "6"}, 0},
		{"6 + 6 = ?", []string{"12", "66", "10", "13"}, 0},
		{"9 - 4 = ?", []string{"5", "13", "4", "6"}, 0},
		{"10 + 10 = ?", []string{"20", "100", "10", "30"}, 0},
	}},
	{model.SubjectMaths, "Class 2", []questionSeed{
		{"7 × 7 = ?", []string{"49", "77", "14", "42"}, 0},
		{"9 × 3 = ?", []string{"27", "93", "12", "24"}, 0},
		{"8 × 8 = ?", []string{"64", "88", "16", "72"}, 0},
		{"6 × 9 = ?", []string{"54", "69", "15", "45"}, 0},
		{"12 × 2 = ?", []string{"24", "122", "14", "22"}, 0},
	}},
	{model.SubjectScience, "Class 1", []questionSeed{
		{"Which do we use to see?", []string{"Eyes", "Ears", "Nose", "Hands"}, 0},
		{"Which food is healthy?", []string{"Fruits", "Candy", "Chips", "Soda"}, 0},
		{"When do we sleep?", []string{"Night", "Morning", "Noon", "Never"}, 0},
		{"Which keeps teeth clean?", []string{"Brushing", "Sleeping", "Running", "Eating sweets"}, 0},
		{"What do plants need to grow?", []string{"Water", "Candy", "Plastic", "Glass"}, 0},
	}},
	{model.SubjectMaths, "Class 3", []questionSeed{
		{"What is 1/2 of 20?", []string{"10", "5", "40", "2"}, 0},
		{"Which fraction equals one whole?", []string{"1/2", "2/4", "4/4", "3/4"}, 2},
		{"What is 1/4 of 16?", []string{"4", "8", "2", "12"}, 0},
		{"Which is smaller?", []string{"1/2", "1/3", "2/3", "3/3"}, 1},
		{"What is 2/2 of 6?", []string{"6", "3", "12", "2"}, 0},
	}},
	{model.SubjectScience, "Class 2", []questionSeed{
		{"The sun heats water and makes?", []string{"Vapor", "Ice", "Stone", "Sand"}, 0},
		{"Rain comes from?", []string{"Clouds", "Trees", "Mountains", "Rivers"}, 0},
		{"Water freezing becomes?", []string{"Ice", "Vapor", "Cloud", "Rain"}, 0},
		{"Which is a water body?", []string{"Ocean", "Desert", "Hill", "Road"}, 0},
		{"Snow is a form of?", []string{"Water", "Fire", "Air", "Rock"}, 0},
	}},
	{model.SubjectScience, "Class 3", []questionSeed{
		{"Which of these breathes?", []string{"Fish", "Stone", "Cup", "Brick"}, 0},
		{"Plants make food using?", []string{"Sunlight", "Plastic", "Metal", "Sand"}, 0},
		{"Which is a sign of a living thing?", []string{"Growth", "Rust", "Shine", "Echo"}, 0},
		{"A seed grows into a?", []string{"Plant", "Rock", "Cloud", "Car"}, 0},
		{"Do machines reproduce on their own?", []string{"No", "Yes"}, 0},
	}},
}

// seedCatalogue 题库与课程目录为空时写入默认目录。
// 只在空库时执行，线上内容以管理端维护为准。
func seedCatalogue(db *gorm.DB) error {
	var lessonCount int64
	db.Model(&model.Lesson{}).Count(&lessonCount)
	if lessonCount == 0 {
		order := map[string]int{}
		for _, ls := range lessonSeeds {
			key := string(ls.subject) + "/" + ls.level
			order[key]++
			lesson := &model.Lesson{
				Subject:    ls.subject,
				ClassLevel: ls.level,
				Title:      ls.title,
				Topic:      ls.topic,
				Order:      order[key],
				HasAudio:   ls.hasAudio,
				HasVideo:   ls.hasVideo,
			}
			if err := db.Create(lesson).Error; err != nil {
				return err
			}
			for i, qs := range ls.questions {
				lessonID := lesson.ID
				q := &model.Question{
					Subject:       ls.subject,
					ClassLevel:    ls.level,
					Kind:          model.TestTopic,
					LessonID:      &lessonID,
					Topic:         ls.topic,
					Text:          qs.text,
					Options:       qs.options,
					CorrectOption: qs.correct,
					Order:         i + 1,
				}
				if err := db.Create(q).Error; err != nil {
					return err
				}
			}
		}
		log.Println("Lesson catalogue seeded")
	}

	var placementCount int64
	db.Model(&model.Question{}).Where("kind = ?", model.TestPlacement).Count(&placementCount)
	if placementCount == 0 {
		for i, ps := range placementSeeds {
			q := &model.Question{
				Subject:       ps.subject,
				ClassLevel:    ps.level,
				Kind:          model.TestPlacement,
				Text:          ps.q.text,
				Options:       ps.q.options,
				CorrectOption: ps.q.correct,
				Order:         i + 1,
			}
			if err := db.Create(q).Error; err != nil {
				return err
			}
		}
		log.Println("Placement diagnostics seeded")
	}

	var finalCount int64
	db.Model(&model.Question{}).Where("kind = ?", model.TestFinal).Count(&finalCount)
	if finalCount == 0 {
		for _, fs := range finalSeeds {
			for i, qs := range fs.questions {
				q := &model.Question{
					Subject:       fs.subject,
					ClassLevel:    fs.level,
					Kind:          model.TestFinal,
					Text:          qs.text,
					Options:       qs.options,
					CorrectOption: qs.correct,
					Order:         i + 1,
				}
				if err := db.Create(q).Error; err != nil {
					return err
				}
			}
		}
		log.Println("Final exam papers seeded")
	}

	return nil
}
