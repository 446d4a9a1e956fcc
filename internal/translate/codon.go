package translate

// table11 is NCBI translation table 11, the bacterial, archaeal and plant
// plastid code. Its amino acid assignments match the standard code.
var table11 = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

// starts11 are the initiation codons of table 11.
var starts11 = map[string]bool{
	"TTG": true, "CTG": true, "ATT": true, "ATC": true,
	"ATA": true, "ATG": true, "GTG": true,
}

// iupac expands each nucleotide code to the bases it stands for.
var iupac = map[byte]string{
	'A': "A", 'C': "C", 'G': "G", 'T': "T", 'U': "T",
	'R': "AG", 'Y': "CT", 'S': "CG", 'W': "AT",
	'K': "GT", 'M': "AC",
	'B': "CGT", 'D': "AGT", 'H': "ACT", 'V': "ACG",
	'N': "ACGT",
}

var complement = map[byte]byte{
	'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A', 'U': 'A',
	'R': 'Y', 'Y': 'R', // A/G  <->  C/T
	'S': 'S', 'W': 'W', // GC   <->  GC   ; AT <-> AT
	'K': 'M', 'M': 'K',
	'B': 'V', 'V': 'B',
	'D': 'H', 'H': 'D',
	'N': 'N',
}

// RevComp returns the reverse complement of an upper-case nucleotide sequence.
// Letters outside the IUPAC alphabet become N.
func RevComp(seq string) string {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		if c, ok := complement[seq[n-1-i]]; ok {
			out[i] = c
		} else {
			out[i] = 'N'
		}
	}
	return string(out)
}

// residue translates one codon. An ambiguous codon translates to the residue
// every base it could be agrees on, otherwise to X.
func residue(codon string) byte {
	if aa, ok := table11[codon]; ok {
		return aa
	}

	first, ok1 := iupac[codon[0]]
	second, ok2 := iupac[codon[1]]
	third, ok3 := iupac[codon[2]]
	if !ok1 || !ok2 || !ok3 {
		return 'X'
	}

	var aa byte
	for i := 0; i < len(first); i++ {
		for j := 0; j < len(second); j++ {
			for k := 0; k < len(third); k++ {
				got := table11[string([]byte{first[i], second[j], third[k]})]
				if aa == 0 {
					aa = got
				} else if got != aa {
					return 'X'
				}
			}
		}
	}
	return aa
}
