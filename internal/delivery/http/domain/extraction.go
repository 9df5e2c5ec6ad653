package domain

var (
	EXTRACTION_START_SUCCESS         = "Berhasil memulai sesi ekstraksi"
	EXTRACTION_START_FAILED          = "Gagal memulai sesi ekstraksi"
	EXTRACTION_GET_SESSION_SUCCESS   = "Berhasil mendapatkan data sesi"
	EXTRACTION_GET_SESSION_FAILED    = "Gagal mendapatkan data sesi"
	EXTRACTION_LIST_SESSION_SUCCESS  = "Berhasil mendapatkan riwayat sesi"
	EXTRACTION_LIST_SESSION_FAILED   = "Gagal mendapatkan riwayat sesi"
	EXTRACTION_GET_QUESTIONS_SUCCESS = "Berhasil mendapatkan soal hasil ekstraksi"
	EXTRACTION_GET_QUESTIONS_FAILED  = "Gagal mendapatkan soal hasil ekstraksi"
	EXTRACTION_STREAM_FAILED         = "Gagal membuka stream sesi"

	BANK_PROMOTE_SUCCESS         = "Berhasil mempromosikan soal ke bank"
	BANK_PROMOTE_FAILED          = "Gagal mempromosikan soal ke bank"
	BANK_PENDING_SUCCESS         = "Berhasil mendapatkan antrian promosi"
	BANK_PENDING_FAILED          = "Gagal mendapatkan antrian promosi"
	BANK_UPDATE_METADATA_SUCCESS = "Berhasil memperbarui metadata soal"
	BANK_UPDATE_METADATA_FAILED  = "Gagal memperbarui metadata soal"
)
