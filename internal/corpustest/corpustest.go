// Package corpustest provides a small in-memory corpus for package tests.
// It carries a handful of real verses in Uthmani script with their simple
// renderings, enough to exercise every matcher tier, normalized-form
// collisions (2:1 and 3:1 both normalize to the letters alif-lam-mim while
// their raw marks differ), and verse ranges.
package corpustest

import "github.com/tartil-labs/sanad/core/quran"

// Fixture returns a fresh fixture corpus. Callers must treat it as
// read-only, the same contract the real corpus carries.
func Fixture() *quran.Corpus {
	return &quran.Corpus{
		Surahs: []*quran.Surah{
			{Number: 1, Name: "الفاتحة", EnglishName: "Al-Fatiha", VerseCount: 7, RevelationType: quran.Meccan},
			{Number: 2, Name: "البقرة", EnglishName: "Al-Baqara", VerseCount: 286, RevelationType: quran.Medinan},
			{Number: 3, Name: "آل عمران", EnglishName: "Aal-i-Imran", VerseCount: 200, RevelationType: quran.Medinan},
			{Number: 103, Name: "العصر", EnglishName: "Al-Asr", VerseCount: 3, RevelationType: quran.Meccan},
			{Number: 108, Name: "الكوثر", EnglishName: "Al-Kawthar", VerseCount: 3, RevelationType: quran.Meccan},
			{Number: 112, Name: "الإخلاص", EnglishName: "Al-Ikhlas", VerseCount: 4, RevelationType: quran.Meccan},
		},
		Verses: []*quran.Verse{
			{ID: 1, Surah: 1, Ayah: 1, Text: "بِسْمِ ٱللَّهِ ٱلرَّحْمَٰنِ ٱلرَّحِيمِ", TextSimple: "بسم الله الرحمن الرحيم", Page: 1, Juz: 1},
			{ID: 2, Surah: 1, Ayah: 2, Text: "ٱلْحَمْدُ لِلَّهِ رَبِّ ٱلْعَٰلَمِينَ", TextSimple: "الحمد لله رب العالمين", Page: 1, Juz: 1},
			{ID: 3, Surah: 1, Ayah: 3, Text: "ٱلرَّحْمَٰنِ ٱلرَّحِيمِ", TextSimple: "الرحمن الرحيم", Page: 1, Juz: 1},
			{ID: 4, Surah: 1, Ayah: 4, Text: "مَٰلِكِ يَوْمِ ٱلدِّينِ", TextSimple: "مالك يوم الدين", Page: 1, Juz: 1},
			{ID: 5, Surah: 1, Ayah: 5, Text: "إِيَّاكَ نَعْبُدُ وَإِيَّاكَ نَسْتَعِينُ", TextSimple: "إياك نعبد وإياك نستعين", Page: 1, Juz: 1},
			{ID: 6, Surah: 1, Ayah: 6, Text: "ٱهْدِنَا ٱلصِّرَٰطَ ٱلْمُسْتَقِيمَ", TextSimple: "اهدنا الصراط المستقيم", Page: 1, Juz: 1},
			{ID: 7, Surah: 1, Ayah: 7, Text: "صِرَٰطَ ٱلَّذِينَ أَنْعَمْتَ عَلَيْهِمْ غَيْرِ ٱلْمَغْضُوبِ عَلَيْهِمْ وَلَا ٱلضَّآلِّينَ", TextSimple: "صراط الذين أنعمت عليهم غير المغضوب عليهم ولا الضالين", Page: 1, Juz: 1},
			{ID: 8, Surah: 2, Ayah: 1, Text: "الٓمٓ", TextSimple: "الم", Page: 2, Juz: 1},
			{ID: 262, Surah: 2, Ayah: 255, Text: "ٱللَّهُ لَآ إِلَٰهَ إِلَّا هُوَ ٱلْحَيُّ ٱلْقَيُّومُ", TextSimple: "الله لا إله إلا هو الحي القيوم", Page: 42, Juz: 3},
			{ID: 294, Surah: 3, Ayah: 1, Text: "الٓمّٓ", TextSimple: "الم", Page: 50, Juz: 3},
			{ID: 6177, Surah: 103, Ayah: 1, Text: "وَٱلْعَصْرِ", TextSimple: "والعصر", Page: 601, Juz: 30},
			{ID: 6178, Surah: 103, Ayah: 2, Text: "إِنَّ ٱلْإِنسَٰنَ لَفِى خُسْرٍ", TextSimple: "إن الإنسان لفي خسر", Page: 601, Juz: 30},
			{ID: 6179, Surah: 103, Ayah: 3, Text: "إِنَّ ٱلَّذِينَ ءَامَنُوا۟ وَعَمِلُوا۟ ٱلصَّٰلِحَٰتِ وَتَوَاصَوْا۟ بِٱلْحَقِّ وَتَوَاصَوْا۟ بِٱلصَّبْرِ", TextSimple: "إن الذين آمنوا وعملوا الصالحات وتواصوا بالحق وتواصوا بالصبر", Page: 601, Juz: 30},
			{ID: 6205, Surah: 108, Ayah: 1, Text: "إِنَّآ أَعْطَيْنَٰكَ ٱلْكَوْثَرَ", TextSimple: "إنا أعطيناك الكوثر", Page: 602, Juz: 30},
			{ID: 6206, Surah: 108, Ayah: 2, Text: "فَصَلِّ لِرَبِّكَ وَٱنْحَرْ", TextSimple: "فصل لربك وانحر", Page: 602, Juz: 30},
			{ID: 6207, Surah: 108, Ayah: 3, Text: "إِنَّ شَانِئَكَ هُوَ ٱلْأَبْتَرُ", TextSimple: "إن شانئك هو الأبتر", Page: 602, Juz: 30},
			{ID: 6222, Surah: 112, Ayah: 1, Text: "قُلْ هُوَ ٱللَّهُ أَحَدٌ", TextSimple: "قل هو الله أحد", Page: 604, Juz: 30},
			{ID: 6223, Surah: 112, Ayah: 2, Text: "ٱللَّهُ ٱلصَّمَدُ", TextSimple: "الله الصمد", Page: 604, Juz: 30},
			{ID: 6224, Surah: 112, Ayah: 3, Text: "لَمْ يَلِدْ وَلَمْ يُولَدْ", TextSimple: "لم يلد ولم يولد", Page: 604, Juz: 30},
			{ID: 6225, Surah: 112, Ayah: 4, Text: "وَلَمْ يَكُن لَّهُۥ كُفُوًا أَحَدٌۢ", TextSimple: "ولم يكن له كفوا أحد", Page: 604, Juz: 30},
		},
	}
}
