package service

import "fmt"

const fusionPromptTemplate = `Generate a high-fidelity, cinematic splash art of a single fused character that combines the physical traits of League of Legends champions %[1]s and %[2]s.

Reference Images Provided:
1. %[1]s (Base appearance)
2. %[2]s (Base appearance)

Constraints:
Fusion: The character must seamlessly blend features of both. It must look like one coherent entity, not two separate figures.
Theme: Rigidly apply the visual markers, materials, and VFX of the %[3]s universe (e.g. skin line).
Clean: No text, logos, or UI elements.
Composition: Center the character. High resolution, detailed background appropriate for a splash art.`

// RefinementInstruction 要求模型只返回纯文本提示词
const RefinementInstruction = "Refine this prompt for an AI image generator. IMPORTANT: Return ONLY the refined prompt text. Do NOT return JSON. Do NOT use tools."

// ComposeFusionPrompt 纯函数，相同输入得到相同文本
func ComposeFusionPrompt(nameA, nameB, theme string) string {
	return fmt.Sprintf(fusionPromptTemplate, nameA, nameB, theme)
}
