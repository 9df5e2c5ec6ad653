package database

import (
	"encoding/json"
	"fmt"

	"github.com/fahrizm/soalgen-be/internal/entity"
	"gorm.io/gorm"
)

type seedEntry struct {
	EntryID      string
	QuestionText string
	Options      []string
	CorrectIndex int
	Subject      string
	Chapter      string
	Topics       []string
	Tags         []string
	Difficulty   string
}

// BankSeedData - Soal awal untuk development. Entri ini belum terindeks di
// vector index; promosikan soal hasil ekstraksi untuk mengisi index.
var BankSeedData = []seedEntry{
	{EntryID: "seed-mat-001", QuestionText: "Berapakah hasil dari 12 x 8?", Options: []string{"84", "96", "104", "112"}, CorrectIndex: 1, Subject: "Matematika", Chapter: "Perkalian", Topics: []string{"perkalian", "operasi hitung"}, Tags: []string{"kelas-4"}, Difficulty: entity.DifficultyEasy},
	{EntryID: "seed-mat-002", QuestionText: "Sederhanakan pecahan 18/24.", Options: []string{"2/3", "3/4", "4/5", "5/6"}, CorrectIndex: 1, Subject: "Matematika", Chapter: "Pecahan", Topics: []string{"pecahan", "penyederhanaan"}, Tags: []string{"kelas-5"}, Difficulty: entity.DifficultyEasy},
	{EntryID: "seed-mat-003", QuestionText: "Sebuah persegi panjang memiliki panjang 12 cm dan lebar 7 cm. Berapakah luasnya?", Options: []string{"38 cm2", "76 cm2", "84 cm2", "96 cm2"}, CorrectIndex: 2, Subject: "Matematika", Chapter: "Geometri", Topics: []string{"luas", "persegi panjang"}, Tags: []string{"kelas-5"}, Difficulty: entity.DifficultyMedium},
	{EntryID: "seed-mat-004", QuestionText: "Jika x + 7 = 15, berapakah nilai x?", Options: []string{"6", "7", "8", "9"}, CorrectIndex: 2, Subject: "Matematika", Chapter: "Aljabar", Topics: []string{"persamaan linear"}, Tags: []string{"kelas-7"}, Difficulty: entity.DifficultyMedium},
	{EntryID: "seed-mat-005", QuestionText: "Tentukan akar-akar dari x2 - 5x + 6 = 0.", Options: []string{"x = 1 dan x = 6", "x = 2 dan x = 3", "x = -2 dan x = -3", "x = 5 dan x = 6"}, CorrectIndex: 1, Subject: "Matematika", Chapter: "Aljabar", Topics: []string{"persamaan kuadrat", "faktorisasi"}, Tags: []string{"kelas-9"}, Difficulty: entity.DifficultyHard},
	{EntryID: "seed-fis-001", QuestionText: "Satuan SI untuk gaya adalah?", Options: []string{"Joule", "Newton", "Watt", "Pascal"}, CorrectIndex: 1, Subject: "Fisika", Chapter: "Dinamika", Topics: []string{"gaya", "satuan"}, Tags: []string{"kelas-8"}, Difficulty: entity.DifficultyEasy},
	{EntryID: "seed-fis-002", QuestionText: "Sebuah benda bergerak dengan kecepatan tetap 4 m/s selama 10 sekon. Berapa jarak yang ditempuh?", Options: []string{"14 m", "25 m", "40 m", "50 m"}, CorrectIndex: 2, Subject: "Fisika", Chapter: "Kinematika", Topics: []string{"glb", "kecepatan"}, Tags: []string{"kelas-8"}, Difficulty: entity.DifficultyMedium},
	{EntryID: "seed-fis-003", QuestionText: "Sebuah benda jatuh bebas dari ketinggian 45 m (g = 10 m/s2). Berapa lama benda sampai di tanah?", Options: []string{"2 s", "3 s", "4 s", "5 s"}, CorrectIndex: 1, Subject: "Fisika", Chapter: "Kinematika", Topics: []string{"gerak jatuh bebas", "gravitasi"}, Tags: []string{"kelas-10"}, Difficulty: entity.DifficultyHard},
	{EntryID: "seed-bio-001", QuestionText: "Organel sel yang berfungsi sebagai tempat respirasi sel adalah?", Options: []string{"Ribosom", "Mitokondria", "Lisosom", "Nukleus"}, CorrectIndex: 1, Subject: "Biologi", Chapter: "Sel", Topics: []string{"organel", "respirasi"}, Tags: []string{"kelas-11"}, Difficulty: entity.DifficultyEasy},
	{EntryID: "seed-bio-002", QuestionText: "Proses fotosintesis menghasilkan?", Options: []string{"Karbon dioksida dan air", "Glukosa dan oksigen", "Protein dan lemak", "Nitrogen dan oksigen"}, CorrectIndex: 1, Subject: "Biologi", Chapter: "Fotosintesis", Topics: []string{"fotosintesis", "metabolisme"}, Tags: []string{"kelas-8"}, Difficulty: entity.DifficultyMedium},
}

func SeedQuestionBank(db *gorm.DB) error {
	// Check if already seeded
	var count int64
	db.Model(&entity.QuestionBankEntry{}).Count(&count)
	if count > 0 {
		fmt.Println("Question bank already seeded, skipping...")
		return nil
	}

	fmt.Println("Seeding question bank entries...")

	for _, s := range BankSeedData {
		optionsJSON, err := json.Marshal(s.Options)
		if err != nil {
			return fmt.Errorf("failed to marshal options for %s: %w", s.EntryID, err)
		}
		topicsJSON, err := json.Marshal(s.Topics)
		if err != nil {
			return fmt.Errorf("failed to marshal topics for %s: %w", s.EntryID, err)
		}
		tagsJSON, err := json.Marshal(s.Tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags for %s: %w", s.EntryID, err)
		}

		row := entity.QuestionBankEntry{
			EntryID:      s.EntryID,
			QuestionText: s.QuestionText,
			Options:      string(optionsJSON),
			CorrectIndex: s.CorrectIndex,
			Subject:      s.Subject,
			Chapter:      s.Chapter,
			Topics:       string(topicsJSON),
			Tags:         string(tagsJSON),
			Difficulty:   s.Difficulty,
			VectorID:     s.EntryID,
		}

		if err := db.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to seed entry %s: %w", s.EntryID, err)
		}
	}

	fmt.Printf("Successfully seeded %d question bank entries\n", len(BankSeedData))
	return nil
}
