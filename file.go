package oggcaf

import "os"

// ConvertOggFileToCAFFile reads the Ogg-Opus file at inPath, writes the
// converted CAF file to outPath, and, if deleteInput is true, removes
// inPath once the conversion has succeeded.
func ConvertOggFileToCAFFile(inPath, outPath string, deleteInput bool) error {
	input, err := os.ReadFile(inPath)
	if err != nil {
		return newConvertError(KindIOFailure, err)
	}
	output, err := ConvertOggToCAF(input)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, output, 0o644); err != nil {
		return newConvertError(KindIOFailure, err)
	}
	if deleteInput {
		if err := os.Remove(inPath); err != nil {
			return newConvertError(KindIOFailure, err)
		}
	}
	return nil
}

// ConvertCAFFileToOggFile reads the CAF file at inPath, writes the
// converted Ogg-Opus file to outPath, and, if deleteInput is true, removes
// inPath once the conversion has succeeded.
func ConvertCAFFileToOggFile(inPath, outPath string, deleteInput bool) error {
	input, err := os.ReadFile(inPath)
	if err != nil {
		return newConvertError(KindIOFailure, err)
	}
	output, err := ConvertCAFToOgg(input)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, output, 0o644); err != nil {
		return newConvertError(KindIOFailure, err)
	}
	if deleteInput {
		if err := os.Remove(inPath); err != nil {
			return newConvertError(KindIOFailure, err)
		}
	}
	return nil
}
