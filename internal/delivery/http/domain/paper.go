package domain

var (
	PAPER_GENERATE_SUCCESS = "Berhasil merakit paket soal"
	PAPER_GENERATE_FAILED  = "Gagal merakit paket soal"
)
